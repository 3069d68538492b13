// internal/models/fideal.go
package models

// WarrantyProduct is an optional one-to-one warranty attached to an F&I deal.
type WarrantyProduct struct {
	Name       string  `json:"name"`
	Provider   string  `json:"provider,omitempty"`
	TermMonths int     `json:"termMonths"`
	Cost       float64 `json:"cost"`
}

// AftermarketProduct is an add-on sold with an F&I deal.
type AftermarketProduct struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// FIDeal is a Deal after submission to F&I: the vehicle/customer fields
// plus finance terms and product attachments.
type FIDeal struct {
	ID                  int                  `json:"id"`
	CustomerName        string               `json:"customerName"`
	CustomerEmail       string               `json:"customerEmail,omitempty"`
	CustomerPhone       string               `json:"customerPhone,omitempty"`
	Vehicle             string               `json:"vehicle"`
	VIN                 string               `json:"vin,omitempty"`
	VehicleType         string               `json:"vehicleType,omitempty"`
	SalePrice           float64              `json:"salePrice,omitempty"`
	FinanceAmount       float64              `json:"financeAmount"`
	APR                 float64              `json:"apr"`
	TermMonths          int                  `json:"termMonths"`
	MonthlyPayment      float64              `json:"monthlyPayment"`
	Warranty            *WarrantyProduct     `json:"warranty,omitempty"`
	AftermarketProducts []AftermarketProduct `json:"aftermarketProducts,omitempty"`
	GapInsurance        bool                 `json:"gapInsurance"`
	GapCost             float64              `json:"gapCost,omitempty"`
	TradeInVehicle      string               `json:"tradeInVehicle,omitempty"`
	TradeInValue        float64              `json:"tradeInValue"`
	Status              FIDealStatus         `json:"status"`
	Salesperson         string               `json:"salesperson,omitempty"`
	TotalProfit         float64              `json:"totalProfit"`
	Notes               string               `json:"notes,omitempty"`
	SubmittedDate       string               `json:"submittedDate"` // YYYY-MM-DD
}
