package updatefideal

import "dealership-workers/internal/models"

type Input struct {
	FIDeal models.FIDeal `json:"fiDeal"`
}

type Output struct {
	Success bool           `json:"success"`
	Found   bool           `json:"found"`
	Message string         `json:"message"`
	FIDeal  *models.FIDeal `json:"fiDeal,omitempty"`
}
