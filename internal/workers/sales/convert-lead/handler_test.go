package convertlead

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

func TestExecuteConvertsLead(t *testing.T) {
	h, st := newTestHandler(t)
	lead := st.AddLead(models.Lead{
		FirstName: "Marcus",
		LastName:  "Webb",
		Email:     "marcus.webb@example.com",
		Phone:     "(555) 201-3344",
		Source:    "Website",
	})

	output, err := h.Execute(context.Background(), &Input{LeadID: lead.ID})
	require.NoError(t, err)

	assert.True(t, output.Success)
	assert.Equal(t, models.LeadStatusConverted, output.Lead.Status)

	// A customer payload is built but no record is created.
	require.NotNil(t, output.Customer)
	assert.Equal(t, "Marcus", output.Customer.FirstName)
	assert.Equal(t, "marcus.webb@example.com", output.Customer.Email)
	assert.Empty(t, st.Customers())

	// The lead stays in its collection, now terminal.
	stored, ok := st.Lead(lead.ID)
	require.True(t, ok)
	assert.Equal(t, models.LeadStatusConverted, stored.Status)
}

func TestExecuteConvertedLeadIsTerminal(t *testing.T) {
	h, st := newTestHandler(t)
	lead := st.AddLead(models.Lead{FirstName: "A"})

	_, err := h.Execute(context.Background(), &Input{LeadID: lead.ID})
	require.NoError(t, err)

	_, err = h.Execute(context.Background(), &Input{LeadID: lead.ID})
	assert.Error(t, err)
}

func TestExecuteUnknownLead(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{LeadID: 404})
	assert.Error(t, err)
}
