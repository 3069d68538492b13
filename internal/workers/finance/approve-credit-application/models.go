package approvecreditapplication

import "dealership-workers/internal/models"

type Input struct {
	ApplicationID          int     `json:"applicationId"`
	ApprovedAmount         float64 `json:"approvedAmount"`
	ApprovedAPR            float64 `json:"approvedApr"`
	ApprovedTermMonths     int     `json:"approvedTermMonths"`
	MonthlyPaymentApproved float64 `json:"monthlyPaymentApproved,omitempty"` // derived when 0
	Stipulations           string  `json:"stipulations,omitempty"`
}

type Output struct {
	Success     bool                             `json:"success"`
	Found       bool                             `json:"found"`
	Message     string                           `json:"message"`
	Application *models.PendingCreditApplication `json:"application,omitempty"`
}
