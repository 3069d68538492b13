package returndealtosales

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

func TestExecuteReturnsDeal(t *testing.T) {
	h, st := newTestHandler(t)
	fi := st.AddFIDeal(models.FIDeal{
		CustomerName:   "Robert Vance",
		Vehicle:        "2022 Ford F-150 XLT",
		SalePrice:      41900,
		FinanceAmount:  35100,
		TradeInVehicle: "2016 Ford Escape SE",
		TradeInValue:   6800,
	})

	output, err := h.Execute(context.Background(), &Input{FIDealID: fi.ID})
	require.NoError(t, err)

	assert.True(t, output.Success)
	require.NotNil(t, output.Deal)
	assert.Equal(t, models.DealStageFinanceApproval, output.Deal.DealStage)
	assert.Equal(t, "In Progress", output.Deal.PaperworkStatus)
	assert.Len(t, output.Deal.Documents, 5)

	assert.Empty(t, st.FIDeals())
	assert.Len(t, st.ReturnedDeals(), 1)
}

func TestExecuteDefaultsMissingFields(t *testing.T) {
	h, st := newTestHandler(t)
	fi := st.AddFIDeal(models.FIDeal{CustomerName: "Walk-in", FinanceAmount: 12000})

	output, err := h.Execute(context.Background(), &Input{FIDealID: fi.ID})
	require.NoError(t, err)
	assert.Equal(t, "Used", output.Deal.VehicleType)
	assert.Equal(t, 12000.0, output.Deal.SalePrice)
}

func TestExecuteUnknownFIDeal(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{FIDealID: 404})
	assert.Error(t, err)
}

func TestExecuteRejectsNonPositiveID(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{FIDealID: -1})
	assert.Error(t, err)
}
