package accounting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePositionsAverageCostInvariant(t *testing.T) {
	// For a buy-only history averagePrice == totalCost / quantity, and the
	// order of equal-priced buys does not matter.
	positions, gain := ComputePositions([]Transaction{
		tx("PETR4", TransactionBuy, 100, 10, "2024-01-10"),
		tx("PETR4", TransactionBuy, 50, 12, "2024-02-10"),
	})

	require.Contains(t, positions, "PETR4")
	pos := positions["PETR4"]

	assert.Equal(t, 150.0, pos.Quantity)
	assert.Equal(t, 1600.0, pos.TotalCost) // 100*10 + 50*12
	assert.Equal(t, Div(pos.TotalCost, pos.Quantity), pos.AveragePrice)
	assert.Equal(t, 0.0, gain)
}

func TestComputePositionsSaleDoesNotAlterAverageCost(t *testing.T) {
	positions, gain := ComputePositions([]Transaction{
		tx("VALE3", TransactionBuy, 100, 10, "2024-01-10"),
		tx("VALE3", TransactionSell, 40, 15, "2024-02-10"),
	})

	require.Contains(t, positions, "VALE3")
	pos := positions["VALE3"]

	assert.Equal(t, 60.0, pos.Quantity)
	assert.Equal(t, 10.0, pos.AveragePrice)
	assert.Equal(t, 600.0, pos.TotalCost)
	assert.Equal(t, 200.0, gain) // (15-10)*40
}

func TestComputePositionsFullLiquidationResetsCostBasis(t *testing.T) {
	positions, gain := ComputePositions([]Transaction{
		tx("ITSA4", TransactionBuy, 300, 9.37, "2024-01-10"),
		tx("ITSA4", TransactionSell, 300, 10.11, "2024-04-02"),
	})

	// Exact zero, not a near-zero floating residue. The closed
	// position drops out of the result entirely.
	assert.NotContains(t, positions, "ITSA4")
	assert.Equal(t, 222.0, Round2(gain)) // (10.11-9.37)*300
}

func TestComputePositionsEndToEndScenario(t *testing.T) {
	positions, gain := ComputePositions([]Transaction{
		tx("PETR4", TransactionBuy, 100, 10, "2024-01-10"),
		tx("PETR4", TransactionBuy, 50, 12, "2024-02-10"),
		tx("PETR4", TransactionSell, 30, 15, "2024-03-10"),
	})

	require.Contains(t, positions, "PETR4")
	pos := positions["PETR4"]

	assert.Equal(t, 120.0, pos.Quantity)
	assert.Equal(t, 10.6667, pos.AveragePrice) // 1600 / 150
	assert.Equal(t, 1280.0, Round2(pos.TotalCost))
	assert.Equal(t, 130.0, Round2(gain)) // (15 - 10.6667) * 30
}

func TestComputePositionsMergesFractionalLots(t *testing.T) {
	positions, _ := ComputePositions([]Transaction{
		tx("ABCD3", TransactionBuy, 100, 10, "2024-01-10"),
		tx("ABCD3F", TransactionBuy, 50, 10, "2024-01-20"),
	})

	require.Len(t, positions, 1)
	require.Contains(t, positions, "ABCD3")
	assert.Equal(t, 150.0, positions["ABCD3"].Quantity)
}

func TestComputePositionsOverSellClamps(t *testing.T) {
	// Selling more than held liquidates the position; the excess realizes
	// nothing and quantity never goes negative.
	positions, gain := ComputePositions([]Transaction{
		tx("MGLU3", TransactionBuy, 100, 4, "2024-01-10"),
		tx("MGLU3", TransactionSell, 150, 6, "2024-02-10"),
	})

	assert.NotContains(t, positions, "MGLU3")
	assert.Equal(t, 200.0, gain) // (6-4)*100, only the held shares
}

func TestComputePositionsSellBeforeAnyBuy(t *testing.T) {
	positions, gain := ComputePositions([]Transaction{
		tx("WEGE3", TransactionSell, 10, 40, "2024-01-10"),
	})

	assert.Empty(t, positions)
	assert.Equal(t, 0.0, gain)
}

func TestComputePositionsUnsortedInput(t *testing.T) {
	// The engine sorts internally; feeding history out of order must not
	// corrupt the weighted average.
	positions, _ := ComputePositions([]Transaction{
		tx("PETR4", TransactionSell, 30, 15, "2024-03-10"),
		tx("PETR4", TransactionBuy, 50, 12, "2024-02-10"),
		tx("PETR4", TransactionBuy, 100, 10, "2024-01-10"),
	})

	require.Contains(t, positions, "PETR4")
	assert.Equal(t, 120.0, positions["PETR4"].Quantity)
	assert.Equal(t, 10.6667, positions["PETR4"].AveragePrice)
}

func TestSortTransactionsIsStableWithinADay(t *testing.T) {
	a := tx("PETR4", TransactionBuy, 1, 10, "2024-01-10")
	a.ID = "first"
	b := tx("PETR4", TransactionBuy, 2, 11, "2024-01-10")
	b.ID = "second"

	sorted := SortTransactions([]Transaction{a, b})
	require.Len(t, sorted, 2)
	assert.Equal(t, "first", sorted[0].ID)
	assert.Equal(t, "second", sorted[1].ID)
}

func TestSortTransactionsDoesNotMutateInput(t *testing.T) {
	input := []Transaction{
		tx("PETR4", TransactionBuy, 1, 10, "2024-02-10"),
		tx("PETR4", TransactionBuy, 2, 11, "2024-01-10"),
	}

	_ = SortTransactions(input)
	assert.Equal(t, "2024-02-10", input[0].Date)
}
