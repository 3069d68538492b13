package calculatepayment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealership-workers/internal/common/logger"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	h, err := NewHandler(HandlerOptions{
		CustomConfig: &Config{
			Enabled:             true,
			MaxJobsActive:       5,
			Timeout:             10 * time.Second,
			DefaultInterestRate: 6,
			DefaultLoanTerm:     60,
		},
		Logger: logger.NewTestLogger(t),
	})
	require.NoError(t, err)
	return h
}

func TestExecuteStandardWorksheet(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		SalePrice:    30000,
		TradeInValue: 10000,
		DownPayments: []float64{0},
	})
	require.NoError(t, err)

	assert.True(t, output.Success)
	assert.Equal(t, 20000.0, output.Projection.NetSalePrice)
	require.Len(t, output.Projection.Options, 1)
	assert.InDelta(t, 386.66, output.Projection.Options[0].MonthlyPayment, 0.01)
}

func TestExecuteUsesConfiguredDefaults(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{SalePrice: 25000})
	require.NoError(t, err)

	assert.Equal(t, 6.0, output.Projection.InterestRate)
	assert.Equal(t, 60, output.Projection.LoanTerm)
	assert.Len(t, output.Projection.Options, len(defaultDownPayments))
}

func TestExecuteExplicitTermsOverrideDefaults(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		SalePrice:    25000,
		InterestRate: 3.5,
		LoanTerm:     48,
	})
	require.NoError(t, err)
	assert.Equal(t, 3.5, output.Projection.InterestRate)
	assert.Equal(t, 48, output.Projection.LoanTerm)
}

func TestExecuteInvalidTerms(t *testing.T) {
	h := newTestHandler(t)
	ctx := context.Background()

	_, err := h.Execute(ctx, &Input{SalePrice: 0})
	assert.Error(t, err)

	_, err = h.Execute(ctx, &Input{SalePrice: 20000, TradeInValue: -1})
	assert.Error(t, err)

	_, err = h.Execute(ctx, &Input{SalePrice: 20000, InterestRate: -2})
	assert.Error(t, err)
}
