package accounting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInputs() ([]Transaction, []DividendEvent, map[string]float64, map[string]AssetMetadata) {
	transactions := []Transaction{
		tx("PETR4", TransactionBuy, 100, 10, "2024-01-10"),
		tx("PETR4", TransactionBuy, 50, 12, "2024-02-10"),
		tx("PETR4", TransactionSell, 30, 15, "2024-03-10"),
		tx("HGLG11", TransactionBuy, 40, 160, "2024-01-20"),
	}

	events := []DividendEvent{
		event("HGLG11", IncomeYield, "2024-01-31", "2024-02-14", 1.10),
		event("PETR4", IncomeDividend, "2024-02-15", "2099-01-01", 0.50),
	}

	quotes := map[string]float64{
		"PETR4": 14.50,
		// HGLG11 intentionally unquoted: balance falls back to average cost
	}

	vacancy := 4.2
	pvp := 0.95
	metadata := map[string]AssetMetadata{
		"HGLG11": {Segment: "Logística", PVP: &pvp, Vacancy: &vacancy},
	}

	return transactions, events, quotes, metadata
}

func TestAssemble(t *testing.T) {
	transactions, events, quotes, metadata := sampleInputs()

	view := Assemble(transactions, events, quotes, metadata, "2024-06-01")

	require.Len(t, view.Positions, 2)
	hglg, petr := view.Positions[0], view.Positions[1]
	require.Equal(t, "HGLG11", hglg.Ticker)
	require.Equal(t, "PETR4", petr.Ticker)

	// Quote present: used as current price.
	assert.Equal(t, 14.50, petr.CurrentPrice)
	// Quote missing: average price fallback, balance math never sees an
	// undefined price.
	assert.Equal(t, hglg.AveragePrice, hglg.CurrentPrice)

	// Metadata is passthrough; absent tickers get the default segment.
	assert.Equal(t, "Logística", hglg.Segment)
	require.NotNil(t, hglg.Vacancy)
	assert.Equal(t, 4.2, *hglg.Vacancy)
	assert.Equal(t, DefaultSegment, petr.Segment)
	assert.Nil(t, petr.PVP)

	// Paid dividends attach per ticker; the future-dated PETR4 payment does
	// not count yet but its receipt is still returned.
	assert.Equal(t, 44.0, hglg.TotalDividends) // 40 * 1.10
	assert.Equal(t, 0.0, petr.TotalDividends)
	require.Len(t, view.Receipts, 2)

	assert.Equal(t, Round2(Add(petr.TotalCost, hglg.TotalCost)), view.Totals.Invested)
	assert.Equal(t, Round2(Add(Mul(120, 14.50), Mul(40, hglg.AveragePrice))), view.Totals.Balance)
	assert.Equal(t, 44.0, view.Totals.TotalDividendsReceived)
	assert.Equal(t, 130.0, view.Totals.SalesGain) // (15 - 10.6667) * 30
}

func TestAssembleIsIdempotent(t *testing.T) {
	transactions, events, quotes, metadata := sampleInputs()

	first := Assemble(transactions, events, quotes, metadata, "2024-06-01")
	second := Assemble(transactions, events, quotes, metadata, "2024-06-01")

	// No hidden mutable state between calls.
	assert.Equal(t, first, second)
}

func TestAssembleEmptyInputs(t *testing.T) {
	view := Assemble(nil, nil, nil, nil, "2024-06-01")

	assert.Empty(t, view.Positions)
	assert.Empty(t, view.Receipts)
	assert.Equal(t, PortfolioTotals{}, view.Totals)
}

func TestAssemblePositionsSortedByTicker(t *testing.T) {
	view := Assemble([]Transaction{
		tx("VALE3", TransactionBuy, 10, 60, "2024-01-10"),
		tx("ABEV3", TransactionBuy, 10, 14, "2024-01-10"),
		tx("MGLU3", TransactionBuy, 10, 4, "2024-01-10"),
	}, nil, nil, nil, "2024-06-01")

	require.Len(t, view.Positions, 3)
	assert.Equal(t, "ABEV3", view.Positions[0].Ticker)
	assert.Equal(t, "MGLU3", view.Positions[1].Ticker)
	assert.Equal(t, "VALE3", view.Positions[2].Ticker)
}

func TestAssembleIgnoresZeroQuotes(t *testing.T) {
	view := Assemble([]Transaction{
		tx("PETR4", TransactionBuy, 100, 10, "2024-01-10"),
	}, nil, map[string]float64{"PETR4": 0}, nil, "2024-06-01")

	require.Len(t, view.Positions, 1)
	assert.Equal(t, 10.0, view.Positions[0].CurrentPrice)
}
