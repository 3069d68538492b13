// internal/models/deal.go
package models

// DocumentStatus is one entry of a deal's paperwork checklist.
type DocumentStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"` // "Pending", "In Progress", "Completed"
}

const (
	DocumentPending    = "Pending"
	DocumentInProgress = "In Progress"
	DocumentCompleted  = "Completed"
)

// ChecklistDocuments is the fixed 5-item checklist seeded on every deal
// returned from F&I.
var ChecklistDocuments = []string{
	"Purchase Agreement",
	"Finance Contract",
	"Title Application",
	"Odometer Statement",
	"Trade-In Agreement",
}

// Deal is a vehicle sale in progress on the sales side.
type Deal struct {
	ID              int              `json:"id"`
	CustomerName    string           `json:"customerName"`
	CustomerEmail   string           `json:"customerEmail,omitempty"`
	CustomerPhone   string           `json:"customerPhone,omitempty"`
	Vehicle         string           `json:"vehicle"`
	VIN             string           `json:"vin,omitempty"`
	VehicleType     string           `json:"vehicleType"` // "New" or "Used"
	SalePrice       float64          `json:"salePrice"`
	TradeInID       int              `json:"tradeInId,omitempty"`
	TradeInVehicle  string           `json:"tradeInVehicle,omitempty"`
	TradeInValue    float64          `json:"tradeInValue"`
	DealStage       DealStage        `json:"dealStage"`
	PaperworkStatus string           `json:"paperworkStatus"`
	Documents       []DocumentStatus `json:"documents,omitempty"`
	Salesperson     string           `json:"salesperson"`
	TotalProfit     float64          `json:"totalProfit"`
	Notes           string           `json:"notes,omitempty"`
	CreatedAt       string           `json:"createdAt"`
}

// TradeIn is a read-only reference entity; selecting one copies its
// appraisal into the Deal (one-way copy, not a live reference).
type TradeIn struct {
	ID             int     `json:"id"`
	CustomerName   string  `json:"customerName"`
	VehicleInfo    string  `json:"vehicleInfo"`
	VIN            string  `json:"vin,omitempty"`
	Mileage        int     `json:"mileage,omitempty"`
	AppraisalValue float64 `json:"appraisalValue"`
	AppraisedBy    string  `json:"appraisedBy,omitempty"`
	AppraisalDate  string  `json:"appraisalDate,omitempty"`
}
