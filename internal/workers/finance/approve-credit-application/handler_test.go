package approvecreditapplication

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealership-workers/internal/common/logger"
	"dealership-workers/internal/models"
	"dealership-workers/internal/store"
)

func newTestHandler(t *testing.T) (*Handler, *store.Store) {
	t.Helper()
	st := store.New(logger.NewNoOpLogger())
	h, err := NewHandler(HandlerOptions{
		CustomConfig: &Config{Enabled: true, MaxJobsActive: 5, Timeout: 30 * time.Second},
		Store:        st,
		Logger:       logger.NewTestLogger(t),
	})
	require.NoError(t, err)
	return h, st
}

func seedPending(t *testing.T, st *store.Store) models.PendingCreditApplication {
	t.Helper()
	app := st.AddCreditApplication(models.CreditApplication{
		ApplicantFirst:  "Denise",
		ApplicantLast:   "Okafor",
		RequestedAmount: 28900,
	})
	pending, err := st.SubmitApplicationToLender(app.ID, "Heartland Bank")
	require.NoError(t, err)
	return pending
}

func TestExecuteCleanApproval(t *testing.T) {
	h, st := newTestHandler(t)
	pending := seedPending(t, st)

	output, err := h.Execute(context.Background(), &Input{
		ApplicationID:      pending.ID,
		ApprovedAmount:     20000,
		ApprovedAPR:        6,
		ApprovedTermMonths: 60,
	})
	require.NoError(t, err)

	assert.True(t, output.Success)
	require.NotNil(t, output.Application)
	assert.Equal(t, models.CreditAppStatusApproved, output.Application.Status)
	assert.NotEmpty(t, output.Application.ApprovalDate)
	// Monthly payment derived from the approved terms.
	assert.InDelta(t, 386.66, output.Application.MonthlyPaymentApproved, 0.01)
}

func TestExecuteStipulationsYieldConditional(t *testing.T) {
	h, st := newTestHandler(t)
	pending := seedPending(t, st)

	output, err := h.Execute(context.Background(), &Input{
		ApplicationID:  pending.ID,
		ApprovedAmount: 25000,
		Stipulations:   "Two recent pay stubs",
	})
	require.NoError(t, err)
	assert.Equal(t, models.CreditAppStatusConditional, output.Application.Status)
	assert.Equal(t, "Two recent pay stubs", output.Application.Stipulations)
}

func TestExecuteExplicitMonthlyPaymentWins(t *testing.T) {
	h, st := newTestHandler(t)
	pending := seedPending(t, st)

	output, err := h.Execute(context.Background(), &Input{
		ApplicationID:          pending.ID,
		ApprovedAmount:         20000,
		ApprovedAPR:            6,
		ApprovedTermMonths:     60,
		MonthlyPaymentApproved: 400,
	})
	require.NoError(t, err)
	assert.Equal(t, 400.0, output.Application.MonthlyPaymentApproved)
}

func TestExecuteUnknownApplicationIsNoOp(t *testing.T) {
	h, st := newTestHandler(t)
	seedPending(t, st)
	before := st.PendingApplications()

	output, err := h.Execute(context.Background(), &Input{ApplicationID: 404, ApprovedAmount: 1000})
	require.NoError(t, err)
	assert.False(t, output.Found)
	assert.Equal(t, before, st.PendingApplications())
}

func TestExecuteDeniedApplicationCannotBeApproved(t *testing.T) {
	h, st := newTestHandler(t)
	pending := seedPending(t, st)
	_, ok, err := st.DenyApplication(pending.ID, "high DTI")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = h.Execute(context.Background(), &Input{ApplicationID: pending.ID, ApprovedAmount: 1000})
	assert.Error(t, err)
}
