// internal/models/customer.go
package models

// Customer is a post-conversion contact, independent of any Lead once created.
type Customer struct {
	ID             int                  `json:"id"`
	FirstName      string               `json:"firstName"`
	LastName       string               `json:"lastName"`
	Email          string               `json:"email"`
	Phone          string               `json:"phone"`
	Address        string               `json:"address,omitempty"`
	City           string               `json:"city,omitempty"`
	State          string               `json:"state,omitempty"`
	Zip            string               `json:"zip,omitempty"`
	VehiclesOwned  []string             `json:"vehiclesOwned,omitempty"`
	Notes          string               `json:"notes,omitempty"`
	Communications []CommunicationEntry `json:"communications,omitempty"`
	CreatedAt      string               `json:"createdAt"`
}

func (c Customer) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
