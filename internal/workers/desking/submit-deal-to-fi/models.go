package submitdealtofi

import "dealership-workers/internal/models"

type Input struct {
	DealID int `json:"dealId"`
}

type Output struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	FIDeal  *models.FIDeal `json:"fiDeal,omitempty"`
}
