// internal/models/lead.go
package models

// Lead is a prospect before purchase.
type Lead struct {
	ID             int                  `json:"id"`
	FirstName      string               `json:"firstName"`
	LastName       string               `json:"lastName"`
	Email          string               `json:"email"`
	Phone          string               `json:"phone"`
	Source         string               `json:"source"`
	Status         LeadStatus           `json:"status"`
	Interest       string               `json:"interest"`
	Score          int                  `json:"score"` // 0-100
	AssignedTo     string               `json:"assignedTo"`
	Notes          string               `json:"notes,omitempty"`
	Communications []CommunicationEntry `json:"communications,omitempty"`
	CreatedAt      string               `json:"createdAt"`
}

// FullName concatenates the name parts for display and search.
func (l Lead) FullName() string {
	if l.FirstName == "" {
		return l.LastName
	}
	if l.LastName == "" {
		return l.FirstName
	}
	return l.FirstName + " " + l.LastName
}

// CommunicationEntry is one event in a record's email/sms history.
type CommunicationEntry struct {
	ID      string `json:"id"`
	Channel string `json:"channel"` // "email" or "sms"
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body"`
	SentAt  string `json:"sentAt"` // ISO 8601
}
