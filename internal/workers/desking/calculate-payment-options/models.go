package calculatepayment

import "dealership-workers/internal/foursquare"

type Input struct {
	SalePrice    float64   `json:"salePrice"`
	TradeInValue float64   `json:"tradeInValue,omitempty"`
	InterestRate float64   `json:"interestRate,omitempty"` // annual percent, config default when 0
	LoanTerm     int       `json:"loanTerm,omitempty"`     // months, config default when 0
	DownPayments []float64 `json:"downPayments,omitempty"`
}

type Output struct {
	Success    bool                  `json:"success"`
	Message    string                `json:"message"`
	Projection foursquare.Projection `json:"projection"`
}
