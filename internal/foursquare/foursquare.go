// internal/foursquare/foursquare.go

// Package foursquare computes payment-option projections for a deal
// worksheet. Everything here is a pure calculation; nothing is persisted.
package foursquare

import "math"

// Projection is a full worksheet: the netted price plus one column per
// candidate down payment.
type Projection struct {
	SalePrice    float64  `json:"salePrice"`
	TradeInValue float64  `json:"tradeInValue"`
	NetSalePrice float64  `json:"netSalePrice"`
	InterestRate float64  `json:"interestRate"` // annual percent
	LoanTerm     int      `json:"loanTerm"`     // months
	Options      []Option `json:"options"`
}

// Option is one down-payment column of the worksheet.
type Option struct {
	DownPayment     float64 `json:"downPayment"`
	AmountToFinance float64 `json:"amountToFinance"`
	MonthlyPayment  float64 `json:"monthlyPayment"`
	TotalPayments   float64 `json:"totalPayments"`
	TotalInterest   float64 `json:"totalInterest"`
	TotalCost       float64 `json:"totalCost"`
}

// MonthlyPayment is the standard annuity formula
// P = A*r*(1+r)^n / ((1+r)^n - 1) with r the monthly rate. It falls back
// to straight-line division when the monthly rate rounds to zero and
// returns 0 when principal, rate, or term is non-positive. Rounded to
// cents.
func MonthlyPayment(principal, annualRatePercent float64, termMonths int) float64 {
	if principal <= 0 || annualRatePercent <= 0 || termMonths <= 0 {
		return 0
	}
	r := annualRatePercent / 100 / 12
	if r < 1e-9 {
		return round2(principal / float64(termMonths))
	}
	growth := math.Pow(1+r, float64(termMonths))
	return round2(principal * r * growth / (growth - 1))
}

// Calculate builds the worksheet for a set of candidate down payments.
// Options are recomputed from scratch on every call.
func Calculate(salePrice, tradeInValue, interestRate float64, loanTerm int, downPayments []float64) Projection {
	p := Projection{
		SalePrice:    salePrice,
		TradeInValue: tradeInValue,
		NetSalePrice: round2(salePrice - tradeInValue),
		InterestRate: interestRate,
		LoanTerm:     loanTerm,
	}

	for _, down := range downPayments {
		amount := round2(p.NetSalePrice - down)
		monthly := MonthlyPayment(amount, interestRate, loanTerm)
		total := round2(monthly * float64(loanTerm))
		opt := Option{
			DownPayment:     down,
			AmountToFinance: amount,
			MonthlyPayment:  monthly,
			TotalPayments:   total,
			TotalInterest:   round2(total - amount),
			TotalCost:       round2(down + total + tradeInValue),
		}
		p.Options = append(p.Options, opt)
	}
	return p
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
