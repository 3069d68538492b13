package returndealtosales

import "dealership-workers/internal/models"

type Input struct {
	FIDealID int `json:"fiDealId"`
}

type Output struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Deal    *models.Deal `json:"deal,omitempty"`
}
