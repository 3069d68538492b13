// internal/models/creditapplication.go
package models

// CreditApplication is a financing request before lender submission.
type CreditApplication struct {
	ID              int             `json:"id"`
	ApplicantFirst  string          `json:"applicantFirst"`
	ApplicantLast   string          `json:"applicantLast"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	DateOfBirth     string          `json:"dateOfBirth,omitempty"`
	Address         string          `json:"address,omitempty"`
	City            string          `json:"city,omitempty"`
	State           string          `json:"state,omitempty"`
	Zip             string          `json:"zip,omitempty"`
	YearsAtAddress  float64         `json:"yearsAtAddress,omitempty"`
	ResidenceType   string          `json:"residenceType,omitempty"` // Own, Rent, Other
	Employer        string          `json:"employer,omitempty"`
	Position        string          `json:"position,omitempty"`
	YearsEmployed   float64         `json:"yearsEmployed,omitempty"`
	MonthlyIncome   float64         `json:"monthlyIncome,omitempty"`
	RequestedAmount float64         `json:"requestedAmount"`
	Vehicle         string          `json:"vehicle,omitempty"`
	Status          CreditAppStatus `json:"status"`
	Notes           string          `json:"notes,omitempty"`
	CreatedDate     string          `json:"createdDate"` // YYYY-MM-DD
}

func (a CreditApplication) ApplicantName() string {
	if a.ApplicantFirst == "" {
		return a.ApplicantLast
	}
	if a.ApplicantLast == "" {
		return a.ApplicantFirst
	}
	return a.ApplicantFirst + " " + a.ApplicantLast
}

// PendingCreditApplication is a CreditApplication after lender submission,
// carrying the F&I-side workflow fields. Approval and denial stamp a date
// and a terminal-leaning status but never delete the record; it is kept
// for audit display.
type PendingCreditApplication struct {
	CreditApplication

	SubmittedTo       string `json:"submittedTo"`
	SubmittedDate     string `json:"submittedDate"` // YYYY-MM-DD
	FIManagerAssigned string `json:"fiManagerAssigned,omitempty"`
	LenderNotes       string `json:"lenderNotes,omitempty"`
	DocumentsReceived bool   `json:"documentsReceived"`
	FollowUpDate      string `json:"followUpDate,omitempty"`

	ApprovalDate           string  `json:"approvalDate,omitempty"` // YYYY-MM-DD
	ApprovedAmount         float64 `json:"approvedAmount,omitempty"`
	ApprovedAPR            float64 `json:"approvedApr,omitempty"`
	ApprovedTermMonths     int     `json:"approvedTermMonths,omitempty"`
	MonthlyPaymentApproved float64 `json:"monthlyPaymentApproved,omitempty"`
	Stipulations           string  `json:"stipulations,omitempty"`
	DenialReason           string  `json:"denialReason,omitempty"`
}
