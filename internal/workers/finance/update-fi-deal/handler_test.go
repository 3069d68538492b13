package updatefideal

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

func TestExecuteUpdatesDeal(t *testing.T) {
	h, st := newTestHandler(t)
	fi := st.AddFIDeal(models.FIDeal{CustomerName: "Robert Vance", FinanceAmount: 35100})

	fi.APR = 6.9
	fi.TermMonths = 72
	fi.GapInsurance = true
	fi.GapCost = 895

	output, err := h.Execute(context.Background(), &Input{FIDeal: fi})
	require.NoError(t, err)

	assert.True(t, output.Success)
	assert.True(t, output.Found)
	// Monthly payment derived from the finance terms.
	assert.Greater(t, output.FIDeal.MonthlyPayment, 0.0)

	stored, ok := st.FIDeal(fi.ID)
	require.True(t, ok)
	assert.True(t, stored.GapInsurance)
	assert.Equal(t, output.FIDeal.MonthlyPayment, stored.MonthlyPayment)
}

func TestExecuteKeepsExplicitMonthlyPayment(t *testing.T) {
	h, st := newTestHandler(t)
	fi := st.AddFIDeal(models.FIDeal{CustomerName: "X", FinanceAmount: 20000})

	fi.APR = 6
	fi.TermMonths = 60
	fi.MonthlyPayment = 400

	output, err := h.Execute(context.Background(), &Input{FIDeal: fi})
	require.NoError(t, err)
	assert.Equal(t, 400.0, output.FIDeal.MonthlyPayment)
}

func TestExecuteUnknownDealIsNoOp(t *testing.T) {
	h, st := newTestHandler(t)
	existing := st.AddFIDeal(models.FIDeal{CustomerName: "Someone"})
	before := st.FIDeals()

	output, err := h.Execute(context.Background(), &Input{FIDeal: models.FIDeal{ID: 404}})
	require.NoError(t, err)

	assert.False(t, output.Success)
	assert.False(t, output.Found)
	assert.Equal(t, before, st.FIDeals())
	_ = existing
}

func TestExecuteRejectsMissingID(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{FIDeal: models.FIDeal{}})
	assert.Error(t, err)
}
