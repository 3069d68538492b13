package denycreditapplication

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
	app := st.AddCreditApplication(models.CreditApplication{ApplicantFirst: "Denise"})
	pending, err := st.SubmitApplicationToLender(app.ID, "Heartland Bank")
	require.NoError(t, err)
	return pending
}

func TestExecuteDeniesApplication(t *testing.T) {
	h, st := newTestHandler(t)
	pending := seedPending(t, st)

	output, err := h.Execute(context.Background(), &Input{
		ApplicationID: pending.ID,
		Reason:        "Debt-to-income ratio too high",
	})
	require.NoError(t, err)

	assert.True(t, output.Success)
	require.NotNil(t, output.Application)
	assert.Equal(t, models.CreditAppStatusDenied, output.Application.Status)
	assert.Equal(t, "Debt-to-income ratio too high", output.Application.DenialReason)
	assert.NotEmpty(t, output.Application.ApprovalDate)

	// Denied records stay in the pending collection for audit.
	assert.Len(t, st.PendingApplications(), 1)
}

func TestExecuteRequiresReason(t *testing.T) {
	h, st := newTestHandler(t)
	pending := seedPending(t, st)

	_, err := h.Execute(context.Background(), &Input{ApplicationID: pending.ID, Reason: "  "})
	assert.Error(t, err)
}

func TestExecuteUnknownApplicationIsNoOp(t *testing.T) {
	h, st := newTestHandler(t)
	seedPending(t, st)
	before := st.PendingApplications()

	output, err := h.Execute(context.Background(), &Input{ApplicationID: 404, Reason: "x"})
	require.NoError(t, err)
	assert.False(t, output.Found)
	assert.Equal(t, before, st.PendingApplications())
}
