// internal/store/store_test.go
package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealership-workers/internal/common/logger"
	"dealership-workers/internal/models"
)

func newTestStore() *Store {
	return New(logger.NewNoOpLogger())
}

func TestSubmitDealToFIThenReturnRoundTrip(t *testing.T) {
	s := newTestStore()
	deal := s.AddDeal(models.Deal{
		CustomerName:   "Priya Raman",
		Vehicle:        "2023 Toyota Camry SE",
		VehicleType:    "Used",
		SalePrice:      27500,
		TradeInVehicle: "2018 Toyota Corolla LE",
		TradeInValue:   11500,
		DealStage:      models.DealStageNegotiation,
		Salesperson:    "Dana Ortiz",
		Notes:          "Customer wants delivery by Friday.",
	})

	fi, err := s.SubmitDealToFI(deal.ID)
	require.NoError(t, err)

	// Finance terms start zeroed at the 60-month default, no products.
	assert.Equal(t, 0.0, fi.APR)
	assert.Equal(t, 60, fi.TermMonths)
	assert.Equal(t, 0.0, fi.MonthlyPayment)
	assert.Nil(t, fi.Warranty)
	assert.False(t, fi.GapInsurance)
	assert.Equal(t, models.FIDealStatusPending, fi.Status)
	assert.Equal(t, 16000.0, fi.FinanceAmount)
	assert.Contains(t, fi.Notes, "Submitted to F&I")
	assert.Contains(t, fi.Notes, "delivery by Friday")

	// The deal left the sales collection in the same step.
	assert.Empty(t, s.Deals())
	assert.Len(t, s.FIDeals(), 1)

	returned, err := s.ReturnDealToSales(fi.ID)
	require.NoError(t, err)

	assert.Equal(t, models.DealStageFinanceApproval, returned.DealStage)
	assert.Equal(t, "In Progress", returned.PaperworkStatus)
	assert.Equal(t, deal.TradeInVehicle, returned.TradeInVehicle)
	assert.Equal(t, deal.TradeInValue, returned.TradeInValue)

	require.Len(t, returned.Documents, 5)
	byName := map[string]string{}
	for _, d := range returned.Documents {
		byName[d.Name] = d.Status
	}
	assert.Equal(t, models.DocumentCompleted, byName["Trade-In Agreement"])
	assert.Equal(t, models.DocumentPending, byName["Purchase Agreement"])

	assert.Empty(t, s.FIDeals())
	assert.Len(t, s.ReturnedDeals(), 1)
}

func TestReturnDealToSalesDefaults(t *testing.T) {
	s := newTestStore()
	fi := s.AddFIDeal(models.FIDeal{
		CustomerName:  "Walk-in Buyer",
		Vehicle:       "2020 Kia Soul",
		FinanceAmount: 14200,
	})

	returned, err := s.ReturnDealToSales(fi.ID)
	require.NoError(t, err)

	assert.Equal(t, "Used", returned.VehicleType)
	assert.Equal(t, 14200.0, returned.SalePrice)

	// No trade-in, so the agreement stays pending.
	for _, d := range returned.Documents {
		if d.Name == "Trade-In Agreement" {
			assert.Equal(t, models.DocumentPending, d.Status)
		}
	}
}

func TestSubmitDealToFIUnknownID(t *testing.T) {
	s := newTestStore()
	_, err := s.SubmitDealToFI(999)
	assert.Error(t, err)
}

func TestSubmitApplicationToLender(t *testing.T) {
	s := newTestStore()
	app := s.AddCreditApplication(models.CreditApplication{
		ApplicantFirst:  "Robert",
		ApplicantLast:   "Vance",
		RequestedAmount: 35100,
	})

	pending, err := s.SubmitApplicationToLender(app.ID, "First Dayton Credit Union")
	require.NoError(t, err)

	assert.Equal(t, models.CreditAppStatusSubmitted, pending.Status)
	assert.Equal(t, "First Dayton Credit Union", pending.SubmittedTo)
	assert.NotEmpty(t, pending.SubmittedDate)
	assert.Contains(t, pending.Notes, "Submitted to First Dayton Credit Union")
	assert.Empty(t, pending.FIManagerAssigned)
	assert.False(t, pending.DocumentsReceived)

	assert.Empty(t, s.CreditApplications())
	assert.Len(t, s.PendingApplications(), 1)
}

func TestSubmitApplicationRequiresLender(t *testing.T) {
	s := newTestStore()
	app := s.AddCreditApplication(models.CreditApplication{ApplicantFirst: "A"})

	_, err := s.SubmitApplicationToLender(app.ID, "   ")
	assert.Error(t, err)
	assert.Len(t, s.CreditApplications(), 1)
	assert.Empty(t, s.PendingApplications())
}

func submitPending(t *testing.T, s *Store) models.PendingCreditApplication {
	t.Helper()
	app := s.AddCreditApplication(models.CreditApplication{
		ApplicantFirst:  "Denise",
		ApplicantLast:   "Okafor",
		RequestedAmount: 28900,
	})
	pending, err := s.SubmitApplicationToLender(app.ID, "Heartland Bank")
	require.NoError(t, err)
	return pending
}

func TestApproveApplicationWithoutStipulations(t *testing.T) {
	s := newTestStore()
	pending := submitPending(t, s)

	got, ok, err := s.ApproveApplication(pending.ID, ApprovalTerms{
		ApprovedAmount:         28000,
		ApprovedAPR:            5.9,
		ApprovedTermMonths:     72,
		MonthlyPaymentApproved: 462.71,
	})
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, models.CreditAppStatusApproved, got.Status)
	assert.NotEmpty(t, got.ApprovalDate)
	assert.Equal(t, 28000.0, got.ApprovedAmount)
	assert.Equal(t, 5.9, got.ApprovedAPR)

	// Approval keeps the record in the pending collection for audit.
	assert.Len(t, s.PendingApplications(), 1)
}

func TestApproveApplicationWithStipulations(t *testing.T) {
	s := newTestStore()
	pending := submitPending(t, s)

	got, ok, err := s.ApproveApplication(pending.ID, ApprovalTerms{
		ApprovedAmount: 25000,
		Stipulations:   "Proof of income, two recent pay stubs",
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.CreditAppStatusConditional, got.Status)
	assert.Equal(t, "Proof of income, two recent pay stubs", got.Stipulations)
}

func TestDenyApplication(t *testing.T) {
	s := newTestStore()
	pending := submitPending(t, s)

	got, ok, err := s.DenyApplication(pending.ID, "Debt-to-income ratio too high")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.CreditAppStatusDenied, got.Status)
	assert.Equal(t, "Debt-to-income ratio too high", got.DenialReason)
	assert.NotEmpty(t, got.ApprovalDate)
}

func TestDeniedApplicationCannotBeApproved(t *testing.T) {
	s := newTestStore()
	pending := submitPending(t, s)

	_, ok, err := s.DenyApplication(pending.ID, "fraud alert")
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = s.ApproveApplication(pending.ID, ApprovalTerms{ApprovedAmount: 1000})
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestUnknownIDNoOps(t *testing.T) {
	s := newTestStore()
	pending := submitPending(t, s)
	before := s.PendingApplications()

	_, ok, err := s.ApproveApplication(9999, ApprovalTerms{ApprovedAmount: 1})
	assert.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.DenyApplication(9999, "whatever")
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.False(t, s.UpdateFIDeal(models.FIDeal{ID: 9999}))
	assert.False(t, s.DeleteFIDeal(9999))
	assert.False(t, s.RemoveReturnedDeal(9999))

	assert.Equal(t, before, s.PendingApplications())
	_ = pending
}

func TestAssignLenderForcesUnderReview(t *testing.T) {
	s := newTestStore()
	pending := submitPending(t, s)

	got, ok, err := s.AssignLender(pending.ID, "Second National", "Carmen Silva")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.CreditAppStatusUnderReview, got.Status)
	assert.Equal(t, "Second National", got.SubmittedTo)
	assert.Equal(t, "Carmen Silva", got.FIManagerAssigned)

	// Reassignment in Under Review stays Under Review.
	got, ok, err = s.AssignLender(pending.ID, "Third Federal", "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.CreditAppStatusUnderReview, got.Status)
	assert.Equal(t, "Third Federal", got.SubmittedTo)
	assert.Equal(t, "Carmen Silva", got.FIManagerAssigned)
}

func TestConvertLead(t *testing.T) {
	s := newTestStore()
	lead := s.AddLead(models.Lead{FirstName: "Marcus", LastName: "Webb"})

	got, err := s.ConvertLead(lead.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LeadStatusConverted, got.Status)

	// Converted is terminal.
	_, err = s.ConvertLead(lead.ID)
	assert.Error(t, err)
}

func TestDealStageTransitions(t *testing.T) {
	s := newTestStore()
	deal := s.AddDeal(models.Deal{CustomerName: "X", DealStage: models.DealStageNegotiation})

	_, err := s.SetDealStage(deal.ID, models.DealStagePaperwork)
	require.NoError(t, err)

	// Skipping ahead two stages is rejected.
	_, err = s.SetDealStage(deal.ID, models.DealStageDelivered)
	assert.Error(t, err)

	_, err = s.SetDealStage(deal.ID, models.DealStageCancelled)
	require.NoError(t, err)
	_, err = s.SetDealStage(deal.ID, models.DealStagePaperwork)
	assert.Error(t, err)
}

func TestAddDealCopiesTradeInAppraisal(t *testing.T) {
	s := newTestStore()
	tradeIn := s.AddTradeIn(models.TradeIn{
		VehicleInfo:    "2018 Toyota Corolla LE",
		AppraisalValue: 11500,
	})

	deal := s.AddDeal(models.Deal{CustomerName: "Priya Raman", TradeInID: tradeIn.ID})
	assert.Equal(t, "2018 Toyota Corolla LE", deal.TradeInVehicle)
	assert.Equal(t, 11500.0, deal.TradeInValue)
}

func TestAppendCommunication(t *testing.T) {
	s := newTestStore()
	lead := s.AddLead(models.Lead{FirstName: "Tom"})

	ok := s.AppendCommunication(CollectionLeads, lead.ID, models.CommunicationEntry{
		ID: "abc", Channel: "email", Subject: "Follow up", Body: "Hi Tom",
	})
	require.True(t, ok)

	got, found := s.Lead(lead.ID)
	require.True(t, found)
	require.Len(t, got.Communications, 1)
	assert.Equal(t, "Follow up", got.Communications[0].Subject)

	assert.False(t, s.AppendCommunication(CollectionLeads, 9999, models.CommunicationEntry{}))
	assert.False(t, s.AppendCommunication(CollectionDeals, lead.ID, models.CommunicationEntry{}))
}

func TestSeededStore(t *testing.T) {
	s := NewSeeded(logger.NewNoOpLogger())

	assert.NotEmpty(t, s.Leads())
	assert.NotEmpty(t, s.Customers())
	assert.NotEmpty(t, s.Deals())
	assert.NotEmpty(t, s.FIDeals())
	assert.NotEmpty(t, s.CreditApplications())
	assert.NotEmpty(t, s.PendingApplications())
	assert.NotEmpty(t, s.TradeIns())

	// The id counter sits above every seeded id.
	next := s.NextID()
	for _, l := range s.Leads() {
		assert.Less(t, l.ID, next)
	}
}
