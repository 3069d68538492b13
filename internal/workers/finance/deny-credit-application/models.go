package denycreditapplication

import "dealership-workers/internal/models"

type Input struct {
	ApplicationID int    `json:"applicationId"`
	Reason        string `json:"reason"`
}

type Output struct {
	Success     bool                             `json:"success"`
	Found       bool                             `json:"found"`
	Message     string                           `json:"message"`
	Application *models.PendingCreditApplication `json:"application,omitempty"`
}
