package convertlead

import "dealership-workers/internal/models"

type Input struct {
	LeadID int `json:"leadId"`
}

// Output carries the converted lead and the customer payload a downstream
// process step may choose to create. Conversion itself does not add a
// Customer record.
type Output struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Lead     *models.Lead     `json:"lead,omitempty"`
	Customer *models.Customer `json:"customer,omitempty"`
}
