// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealership-workers/internal/common/logger"
	"dealership-workers/internal/models"
	"dealership-workers/internal/store"

	calculatepayment "dealership-workers/internal/workers/desking/calculate-payment-options"
	returndealtosales "dealership-workers/internal/workers/desking/return-deal-to-sales"
	submitdealtofi "dealership-workers/internal/workers/desking/submit-deal-to-fi"

	approvecreditapplication "dealership-workers/internal/workers/finance/approve-credit-application"
	assignlender "dealership-workers/internal/workers/finance/assign-lender"
	denycreditapplication "dealership-workers/internal/workers/finance/deny-credit-application"
	submitcreditapplication "dealership-workers/internal/workers/finance/submit-credit-application"
	updatefideal "dealership-workers/internal/workers/finance/update-fi-deal"

	convertlead "dealership-workers/internal/workers/sales/convert-lead"
	exportrecords "dealership-workers/internal/workers/sales/export-records"
	importrecords "dealership-workers/internal/workers/sales/import-records"
	searchrecords "dealership-workers/internal/workers/sales/search-records"
	sendcommunication "dealership-workers/internal/workers/sales/send-communication"
)

// fleet bundles every worker handler over one shared seeded store, the
// way the worker manager wires them in production.
type fleet struct {
	store *store.Store

	submitDeal  *submitdealtofi.Handler
	returnDeal  *returndealtosales.Handler
	calcPayment *calculatepayment.Handler

	submitApp *submitcreditapplication.Handler
	assign    *assignlender.Handler
	approve   *approvecreditapplication.Handler
	deny      *denycreditapplication.Handler
	updateFI  *updatefideal.Handler

	search  *searchrecords.Handler
	convert *convertlead.Handler
	importR *importrecords.Handler
	exportR *exportrecords.Handler
	comms   *sendcommunication.Handler
}

func newFleet(t *testing.T) *fleet {
	t.Helper()
	st := store.NewSeeded(logger.NewNoOpLogger())
	log := logger.NewTestLogger(t)
	timeout := 30 * time.Second

	f := &fleet{store: st}
	var err error

	f.submitDeal, err = submitdealtofi.NewHandler(submitdealtofi.HandlerOptions{
		CustomConfig: &submitdealtofi.Config{Enabled: true, MaxJobsActive: 5, Timeout: timeout},
		Store:        st, Logger: log,
	})
	require.NoError(t, err)

	f.returnDeal, err = returndealtosales.NewHandler(returndealtosales.HandlerOptions{
		CustomConfig: &returndealtosales.Config{Enabled: true, MaxJobsActive: 5, Timeout: timeout},
		Store:        st, Logger: log,
	})
	require.NoError(t, err)

	f.calcPayment, err = calculatepayment.NewHandler(calculatepayment.HandlerOptions{
		CustomConfig: &calculatepayment.Config{
			Enabled: true, MaxJobsActive: 5, Timeout: timeout,
			DefaultInterestRate: 6.9, DefaultLoanTerm: 60,
		},
		Logger: log,
	})
	require.NoError(t, err)

	f.submitApp, err = submitcreditapplication.NewHandler(submitcreditapplication.HandlerOptions{
		CustomConfig: &submitcreditapplication.Config{Enabled: true, MaxJobsActive: 5, Timeout: timeout},
		Store:        st, Logger: log,
	})
	require.NoError(t, err)

	f.assign, err = assignlender.NewHandler(assignlender.HandlerOptions{
		CustomConfig: &assignlender.Config{Enabled: true, MaxJobsActive: 5, Timeout: timeout},
		Store:        st, Logger: log,
	})
	require.NoError(t, err)

	f.approve, err = approvecreditapplication.NewHandler(approvecreditapplication.HandlerOptions{
		CustomConfig: &approvecreditapplication.Config{Enabled: true, MaxJobsActive: 5, Timeout: timeout},
		Store:        st, Logger: log,
	})
	require.NoError(t, err)

	f.deny, err = denycreditapplication.NewHandler(denycreditapplication.HandlerOptions{
		CustomConfig: &denycreditapplication.Config{Enabled: true, MaxJobsActive: 5, Timeout: timeout},
		Store:        st, Logger: log,
	})
	require.NoError(t, err)

	f.updateFI, err = updatefideal.NewHandler(updatefideal.HandlerOptions{
		CustomConfig: &updatefideal.Config{Enabled: true, MaxJobsActive: 5, Timeout: timeout},
		Store:        st, Logger: log,
	})
	require.NoError(t, err)

	f.search, err = searchrecords.NewHandler(searchrecords.HandlerOptions{
		CustomConfig: &searchrecords.Config{Enabled: true, MaxJobsActive: 5, Timeout: timeout},
		Store:        st, Logger: log,
	})
	require.NoError(t, err)

	f.convert, err = convertlead.NewHandler(convertlead.HandlerOptions{
		CustomConfig: &convertlead.Config{Enabled: true, MaxJobsActive: 5, Timeout: timeout},
		Store:        st, Logger: log,
	})
	require.NoError(t, err)

	f.importR, err = importrecords.NewHandler(importrecords.HandlerOptions{
		CustomConfig: &importrecords.Config{Enabled: true, MaxJobsActive: 5, Timeout: timeout, MaxRecords: 1000},
		Store:        st, Logger: log,
	})
	require.NoError(t, err)

	f.exportR, err = exportrecords.NewHandler(exportrecords.HandlerOptions{
		CustomConfig: &exportrecords.Config{Enabled: true, MaxJobsActive: 5, Timeout: timeout, DefaultFormat: "csv"},
		Store:        st, Logger: log,
	})
	require.NoError(t, err)

	f.comms, err = sendcommunication.NewHandler(sendcommunication.HandlerOptions{
		CustomConfig: &sendcommunication.Config{Enabled: true, MaxJobsActive: 5, Timeout: timeout},
		Store:        st, Logger: log,
	})
	require.NoError(t, err)

	return f
}

// TestDealLifecycle walks a seeded deal from the sales desk through F&I
// and back, checking the cross-collection moves at each hop.
func TestDealLifecycle(t *testing.T) {
	f := newFleet(t)
	ctx := context.Background()

	// Desk the deal first.
	calc, err := f.calcPayment.Execute(ctx, &calculatepayment.Input{
		SalePrice:    27500,
		TradeInValue: 11500,
		InterestRate: 6.9,
		LoanTerm:     60,
	})
	require.NoError(t, err)
	require.NotEmpty(t, calc.Projection.Options)
	assert.InDelta(t, 16000, calc.Projection.NetSalePrice, 0.01)

	// Submit to F&I.
	submitted, err := f.submitDeal.Execute(ctx, &submitdealtofi.Input{DealID: 8})
	require.NoError(t, err)
	require.NotNil(t, submitted.FIDeal)
	assert.Equal(t, models.FIDealStatusPending, submitted.FIDeal.Status)
	assert.InDelta(t, 16000, submitted.FIDeal.FinanceAmount, 0.01)

	_, still := f.store.Deal(8)
	assert.False(t, still, "deal should leave the sales collection")

	// F&I structures the financing.
	fiDeal := *submitted.FIDeal
	fiDeal.APR = 6.9
	fiDeal.TermMonths = 60
	updated, err := f.updateFI.Execute(ctx, &updatefideal.Input{FIDeal: fiDeal})
	require.NoError(t, err)
	assert.True(t, updated.Found)
	assert.InDelta(t, 316.06, updated.FIDeal.MonthlyPayment, 0.01)

	// Return to sales for final paperwork.
	returned, err := f.returnDeal.Execute(ctx, &returndealtosales.Input{FIDealID: submitted.FIDeal.ID})
	require.NoError(t, err)
	require.NotNil(t, returned.Deal)
	assert.Equal(t, models.DealStageFinanceApproval, returned.Deal.DealStage)
	require.Len(t, returned.Deal.Documents, 5)

	_, stillFI := f.store.FIDeal(submitted.FIDeal.ID)
	assert.False(t, stillFI, "fi deal should leave the finance collection")
}

// TestCreditApprovalFlow runs the seeded draft application through
// submission, lender assignment, and approval.
func TestCreditApprovalFlow(t *testing.T) {
	f := newFleet(t)
	ctx := context.Background()

	submitted, err := f.submitApp.Execute(ctx, &submitcreditapplication.Input{
		ApplicationID: 11,
		Lender:        "Wright State Bank",
	})
	require.NoError(t, err)
	require.NotNil(t, submitted.Application)
	assert.Equal(t, models.CreditAppStatusSubmitted, submitted.Application.Status)
	assert.Equal(t, "Wright State Bank", submitted.Application.SubmittedTo)

	assigned, err := f.assign.Execute(ctx, &assignlender.Input{
		ApplicationID: submitted.Application.ID,
		Lender:        "First Dayton Credit Union",
		FIManager:     "Carmen Silva",
	})
	require.NoError(t, err)
	assert.True(t, assigned.Found)
	assert.Equal(t, models.CreditAppStatusUnderReview, assigned.Application.Status)

	approved, err := f.approve.Execute(ctx, &approvecreditapplication.Input{
		ApplicationID:      submitted.Application.ID,
		ApprovedAmount:     35100,
		ApprovedAPR:        6.4,
		ApprovedTermMonths: 72,
	})
	require.NoError(t, err)
	assert.True(t, approved.Found)
	assert.Equal(t, models.CreditAppStatusApproved, approved.Application.Status)
	assert.Greater(t, approved.Application.MonthlyPaymentApproved, 0.0)

	// A decided application cannot be denied afterwards.
	_, err = f.deny.Execute(ctx, &denycreditapplication.Input{
		ApplicationID: submitted.Application.ID,
		Reason:        "Debt-to-income too high",
	})
	assert.Error(t, err)
}

// TestCreditDenialFlow denies the seeded under-review application.
func TestCreditDenialFlow(t *testing.T) {
	f := newFleet(t)
	ctx := context.Background()

	denied, err := f.deny.Execute(ctx, &denycreditapplication.Input{
		ApplicationID: 12,
		Reason:        "Insufficient credit history",
	})
	require.NoError(t, err)
	assert.True(t, denied.Found)
	assert.Equal(t, models.CreditAppStatusDenied, denied.Application.Status)
	assert.Equal(t, "Insufficient credit history", denied.Application.DenialReason)

	// The record stays in the pending collection for audit display.
	kept, ok := f.store.PendingApplication(12)
	require.True(t, ok)
	assert.Equal(t, models.CreditAppStatusDenied, kept.Status)
}

// TestLeadToCustomerJourney converts a lead, messages the record, and
// finds it by search.
func TestLeadToCustomerJourney(t *testing.T) {
	f := newFleet(t)
	ctx := context.Background()

	converted, err := f.convert.Execute(ctx, &convertlead.Input{LeadID: 1})
	require.NoError(t, err)
	require.NotNil(t, converted.Customer)
	assert.Equal(t, "Marcus", converted.Customer.FirstName)

	sent, err := f.comms.Execute(ctx, &sendcommunication.Input{
		Collection: store.CollectionLeads,
		RecordID:   1,
		Channel:    "email",
		Subject:    "Welcome aboard",
		Body:       "Thanks for choosing us, Marcus.",
	})
	require.NoError(t, err)
	assert.True(t, sent.Success)

	lead, ok := f.store.Lead(1)
	require.True(t, ok)
	assert.Len(t, lead.Communications, 1)

	found, err := f.search.Execute(ctx, &searchrecords.Input{
		Collection: store.CollectionLeads,
		Query:      "  MARCUS   webb ",
	})
	require.NoError(t, err)
	assert.Equal(t, "marcus webb", found.Query)
	assert.Equal(t, 1, found.Count)
}

// TestImportExportRoundTrip exports the seeded customers as CSV and
// imports them back in.
func TestImportExportRoundTrip(t *testing.T) {
	f := newFleet(t)
	ctx := context.Background()

	exported, err := f.exportR.Execute(ctx, &exportrecords.Input{
		Collection: store.CollectionCustomers,
		Format:     "csv",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, exported.RecordCount)
	assert.Regexp(t, `^customers_\d{4}-\d{2}-\d{2}\.csv$`, exported.Filename)

	imported, err := f.importR.Execute(ctx, &importrecords.Input{
		Collection: store.CollectionCustomers,
		Format:     "csv",
		Data:       exported.Content,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, imported.ImportedCount)
	assert.NotEmpty(t, imported.BatchID)

	customers := f.store.Customers()
	assert.Len(t, customers, 4)

	// Re-imported rows get fresh ids above the seed range, and string
	// fields full of digits come back as strings.
	zips := map[string]bool{}
	for _, id := range imported.ImportedIDs {
		assert.GreaterOrEqual(t, id, 13)
		c, ok := f.store.Customer(id)
		require.True(t, ok)
		zips[c.Zip] = true
	}
	assert.True(t, zips["45402"])
}
