// internal/models/status.go
package models

// LeadStatus is the closed set of lead pipeline stages.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "New"
	LeadStatusContacted LeadStatus = "Contacted"
	LeadStatusQualified LeadStatus = "Qualified"
	LeadStatusNurturing LeadStatus = "Nurturing"
	LeadStatusConverted LeadStatus = "Converted"
	LeadStatusLost      LeadStatus = "Lost"
)

// LeadTransitions lists the allowed lead status moves. Converted and Lost
// are terminal.
var LeadTransitions = map[LeadStatus]map[LeadStatus]bool{
	LeadStatusNew:       {LeadStatusContacted: true, LeadStatusQualified: true, LeadStatusNurturing: true, LeadStatusConverted: true, LeadStatusLost: true},
	LeadStatusContacted: {LeadStatusQualified: true, LeadStatusNurturing: true, LeadStatusConverted: true, LeadStatusLost: true},
	LeadStatusQualified: {LeadStatusNurturing: true, LeadStatusConverted: true, LeadStatusLost: true},
	LeadStatusNurturing: {LeadStatusContacted: true, LeadStatusQualified: true, LeadStatusConverted: true, LeadStatusLost: true},
	LeadStatusConverted: {},
	LeadStatusLost:      {},
}

// DealStage drives the fixed-order progress stepper.
type DealStage string

const (
	DealStageNegotiation      DealStage = "Negotiation"
	DealStagePaperwork        DealStage = "Paperwork"
	DealStageFinanceApproval  DealStage = "Finance Approval"
	DealStageReadyForDelivery DealStage = "Ready for Delivery"
	DealStageDelivered        DealStage = "Delivered"
	DealStageCancelled        DealStage = "Cancelled"
)

// DealStageOrder is the display order of the progress stepper. Cancelled
// sits outside the stepper.
var DealStageOrder = []DealStage{
	DealStageNegotiation,
	DealStagePaperwork,
	DealStageFinanceApproval,
	DealStageReadyForDelivery,
	DealStageDelivered,
}

// StageIndex returns the stepper position of a stage, or -1 when the stage
// is not on the stepper (Cancelled, unknown).
func StageIndex(stage DealStage) int {
	for i, s := range DealStageOrder {
		if s == stage {
			return i
		}
	}
	return -1
}

var DealStageTransitions = map[DealStage]map[DealStage]bool{
	DealStageNegotiation:      {DealStagePaperwork: true, DealStageCancelled: true},
	DealStagePaperwork:        {DealStageFinanceApproval: true, DealStageCancelled: true},
	DealStageFinanceApproval:  {DealStageReadyForDelivery: true, DealStagePaperwork: true, DealStageCancelled: true},
	DealStageReadyForDelivery: {DealStageDelivered: true, DealStageCancelled: true},
	DealStageDelivered:        {},
	DealStageCancelled:        {},
}

// CreditAppStatus is the credit application state machine:
// Draft -> Submitted -> Under Review -> {Approved | Conditional | Denied}.
// One-directional; no path back to Draft.
type CreditAppStatus string

const (
	CreditAppStatusDraft       CreditAppStatus = "Draft"
	CreditAppStatusSubmitted   CreditAppStatus = "Submitted"
	CreditAppStatusUnderReview CreditAppStatus = "Under Review"
	CreditAppStatusApproved    CreditAppStatus = "Approved"
	CreditAppStatusDenied      CreditAppStatus = "Denied"
	CreditAppStatusConditional CreditAppStatus = "Conditional"
)

var CreditAppTransitions = map[CreditAppStatus]map[CreditAppStatus]bool{
	CreditAppStatusDraft:       {CreditAppStatusSubmitted: true},
	CreditAppStatusSubmitted:   {CreditAppStatusUnderReview: true, CreditAppStatusApproved: true, CreditAppStatusConditional: true, CreditAppStatusDenied: true},
	CreditAppStatusUnderReview: {CreditAppStatusApproved: true, CreditAppStatusConditional: true, CreditAppStatusDenied: true},
	CreditAppStatusApproved:    {},
	CreditAppStatusDenied:      {},
	CreditAppStatusConditional: {},
}

// FIDealStatus is the F&I pipeline status for a deal after submission.
type FIDealStatus string

const (
	FIDealStatusPending   FIDealStatus = "Pending"
	FIDealStatusApproved  FIDealStatus = "Approved"
	FIDealStatusFunded    FIDealStatus = "Funded"
	FIDealStatusDelivered FIDealStatus = "Delivered"
)

var FIDealTransitions = map[FIDealStatus]map[FIDealStatus]bool{
	FIDealStatusPending:   {FIDealStatusApproved: true},
	FIDealStatusApproved:  {FIDealStatusFunded: true},
	FIDealStatusFunded:    {FIDealStatusDelivered: true},
	FIDealStatusDelivered: {},
}

// CanTransition reports whether a move is allowed by the given table.
// An empty current value is treated as an initial assignment and allowed.
func CanTransition[S comparable](current, to S, table map[S]map[S]bool) bool {
	var zero S
	if current == zero {
		return true
	}
	nexts, ok := table[current]
	if !ok {
		return false
	}
	return nexts[to]
}
