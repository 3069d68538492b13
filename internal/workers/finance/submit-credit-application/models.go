package submitcreditapplication

import "dealership-workers/internal/models"

type Input struct {
	ApplicationID int    `json:"applicationId"`
	Lender        string `json:"lender"`
}

type Output struct {
	Success     bool                             `json:"success"`
	Message     string                           `json:"message"`
	Application *models.PendingCreditApplication `json:"application,omitempty"`
}
