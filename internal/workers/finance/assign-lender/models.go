package assignlender

import "dealership-workers/internal/models"

type Input struct {
	ApplicationID int    `json:"applicationId"`
	Lender        string `json:"lender"`
	FIManager     string `json:"fiManager,omitempty"`
}

type Output struct {
	Success     bool                             `json:"success"`
	Found       bool                             `json:"found"`
	Message     string                           `json:"message"`
	Application *models.PendingCreditApplication `json:"application,omitempty"`
}
