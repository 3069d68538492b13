package submitcreditapplication

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

func TestExecuteSubmitsApplication(t *testing.T) {
	h, st := newTestHandler(t)
	app := st.AddCreditApplication(models.CreditApplication{
		ApplicantFirst:  "Robert",
		ApplicantLast:   "Vance",
		RequestedAmount: 35100,
	})

	output, err := h.Execute(context.Background(), &Input{
		ApplicationID: app.ID,
		Lender:        "First Dayton Credit Union",
	})
	require.NoError(t, err)

	assert.True(t, output.Success)
	require.NotNil(t, output.Application)
	assert.Equal(t, models.CreditAppStatusSubmitted, output.Application.Status)
	assert.Equal(t, "First Dayton Credit Union", output.Application.SubmittedTo)
	assert.NotEmpty(t, output.Application.SubmittedDate)

	assert.Empty(t, st.CreditApplications())
	assert.Len(t, st.PendingApplications(), 1)
}

func TestExecuteRequiresLender(t *testing.T) {
	h, st := newTestHandler(t)
	app := st.AddCreditApplication(models.CreditApplication{ApplicantFirst: "A"})

	_, err := h.Execute(context.Background(), &Input{ApplicationID: app.ID, Lender: "  "})
	assert.Error(t, err)
	assert.Len(t, st.CreditApplications(), 1)
}

func TestExecuteUnknownApplication(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{ApplicationID: 404, Lender: "Any Bank"})
	assert.Error(t, err)
}

func TestExecuteRejectsNonPositiveID(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{ApplicationID: 0, Lender: "Any Bank"})
	assert.Error(t, err)
}
