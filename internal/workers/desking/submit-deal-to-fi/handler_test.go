package submitdealtofi

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
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

func createMockJob(key int64, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:       key,
		Type:      TaskType,
		Variables: string(variablesJSON),
		Retries:   3,
	}}
}

func TestExecuteSubmitsDeal(t *testing.T) {
	h, st := newTestHandler(t)
	deal := st.AddDeal(models.Deal{
		CustomerName: "Priya Raman",
		Vehicle:      "2023 Toyota Camry SE",
		SalePrice:    27500,
		TradeInValue: 11500,
	})

	output, err := h.Execute(context.Background(), &Input{DealID: deal.ID})
	require.NoError(t, err)

	assert.True(t, output.Success)
	require.NotNil(t, output.FIDeal)
	assert.Equal(t, models.FIDealStatusPending, output.FIDeal.Status)
	assert.Equal(t, 16000.0, output.FIDeal.FinanceAmount)
	assert.Equal(t, 60, output.FIDeal.TermMonths)

	assert.Empty(t, st.Deals())
	assert.Len(t, st.FIDeals(), 1)
}

func TestExecuteUnknownDeal(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{DealID: 404})
	assert.Error(t, err)
}

func TestExecuteRejectsNonPositiveID(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{DealID: 0})
	assert.Error(t, err)
}

func TestParseInput(t *testing.T) {
	h, _ := newTestHandler(t)

	job := createMockJob(1, map[string]interface{}{"dealId": 42})
	input, err := h.parseInput(job)
	require.NoError(t, err)
	assert.Equal(t, 42, input.DealID)
}

func TestParseInputBadVariables(t *testing.T) {
	h, _ := newTestHandler(t)

	job := entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 1, Variables: "{not json"}}
	_, err := h.parseInput(job)
	assert.Error(t, err)
}

func TestNewHandlerRequiresStore(t *testing.T) {
	_, err := NewHandler(HandlerOptions{
		CustomConfig: &Config{Enabled: true, MaxJobsActive: 1, Timeout: time.Second},
	})
	assert.Error(t, err)
}
