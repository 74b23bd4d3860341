package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
	assert.Equal(t, 0.0, Mean(nil))
}

func TestStdDev(t *testing.T) {
	assert.InDelta(t, 2.138, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 0.001)
	assert.Equal(t, 0.0, StdDev(nil))
	// A single point must yield 0, not the sample-variance NaN.
	assert.Equal(t, 0.0, StdDev([]float64{5}))
}

func TestAnnualizedVolatility(t *testing.T) {
	returns := []float64{0.01, -0.02, 0.015, 0.005, -0.01}

	vol := AnnualizedVolatility(returns)
	assert.Greater(t, vol, 0.0)
	// Annualization scales the daily figure up by sqrt(252).
	assert.Greater(t, vol, StdDev(returns))

	assert.Equal(t, 0.0, AnnualizedVolatility(nil))
	assert.Equal(t, 0.0, AnnualizedVolatility([]float64{0.01}))
}

func TestDailyReturns(t *testing.T) {
	returns := DailyReturns([]float64{100, 110, 99})

	assert.InDelta(t, 0.1, returns[0], 1e-9)
	assert.InDelta(t, -0.1, returns[1], 1e-9)
}

func TestDailyReturnsZeroBase(t *testing.T) {
	// A zero value in the series must not divide by zero.
	returns := DailyReturns([]float64{0, 100, 110})

	assert.Equal(t, 0.0, returns[0])
	assert.InDelta(t, 0.1, returns[1], 1e-9)
}

func TestDailyReturnsShortSeries(t *testing.T) {
	assert.Empty(t, DailyReturns([]float64{100}))
	assert.Empty(t, DailyReturns(nil))
}
