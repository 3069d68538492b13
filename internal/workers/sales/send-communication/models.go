package sendcommunication

import (
	"context"

	"dealership-workers/internal/models"
)

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// EmailSender is satisfied by aws.SESClient.
type EmailSender interface {
	SendPlainEmail(ctx context.Context, from, to, subject, body string) error
}

// SMSSender is satisfied by aws.SNSClient.
type SMSSender interface {
	SendSMS(ctx context.Context, phone, message, senderID string) error
}

// Input carries the process variables for one outbound message.
type Input struct {
	Collection string `json:"collection"` // "leads" or "customers"
	RecordID   int    `json:"recordId"`
	Channel    string `json:"channel"` // "email" or "sms"
	Subject    string `json:"subject"`
	Body       string `json:"body"`
}

// Output is returned to the process after delivery.
type Output struct {
	Success   bool                       `json:"success"`
	Message   string                     `json:"message"`
	Channel   string                     `json:"channel"`
	Recipient string                     `json:"recipient"`
	Entry     *models.CommunicationEntry `json:"entry,omitempty"`
}
