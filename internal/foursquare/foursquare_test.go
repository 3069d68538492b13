// internal/foursquare/foursquare_test.go
package foursquare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthlyPayment(t *testing.T) {
	t.Run("standard amortization", func(t *testing.T) {
		assert.InDelta(t, 386.66, MonthlyPayment(20000, 6, 60), 0.01)
	})

	t.Run("zero rate falls back to straight-line", func(t *testing.T) {
		assert.Equal(t, 0.0, MonthlyPayment(12000, 0, 60))
	})

	t.Run("near-zero rate divides evenly", func(t *testing.T) {
		assert.InDelta(t, 200.0, MonthlyPayment(12000, 1e-9, 60), 0.01)
	})

	t.Run("non-positive inputs return zero", func(t *testing.T) {
		assert.Equal(t, 0.0, MonthlyPayment(-5000, 6, 60))
		assert.Equal(t, 0.0, MonthlyPayment(20000, -1, 60))
		assert.Equal(t, 0.0, MonthlyPayment(20000, 6, 0))
	})
}

func TestCalculate(t *testing.T) {
	p := Calculate(30000, 10000, 6, 60, []float64{0, 2000, 5000})

	assert.Equal(t, 20000.0, p.NetSalePrice)
	assert.Len(t, p.Options, 3)

	first := p.Options[0]
	assert.Equal(t, 20000.0, first.AmountToFinance)
	assert.InDelta(t, 386.66, first.MonthlyPayment, 0.01)
	assert.InDelta(t, 386.66*60, first.TotalPayments, 0.5)
	assert.InDelta(t, first.TotalPayments-20000, first.TotalInterest, 0.01)
	assert.InDelta(t, first.TotalPayments+10000, first.TotalCost, 0.01)

	// Larger down payment, smaller financed amount and payment.
	assert.Equal(t, 15000.0, p.Options[2].AmountToFinance)
	assert.Less(t, p.Options[2].MonthlyPayment, first.MonthlyPayment)
	assert.InDelta(t, 5000+p.Options[2].TotalPayments+10000, p.Options[2].TotalCost, 0.01)
}

func TestCalculateNoOptions(t *testing.T) {
	p := Calculate(25000, 0, 7.5, 48, nil)
	assert.Equal(t, 25000.0, p.NetSalePrice)
	assert.Empty(t, p.Options)
}
