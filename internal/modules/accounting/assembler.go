package accounting

import "sort"

// DefaultSegment is used when the metadata source knows nothing about a
// held ticker. Missing enrichment is a normal case, never an error.
const DefaultSegment = "Geral"

// Assemble merges position state with receipts, live quotes and external
// metadata into the final reporting view.
//
// It is a pure function of its arguments: no I/O, no shared state, safe to
// call repeatedly and concurrently. Callers supply the complete transaction
// and event lists plus today's date in YYYY-MM-DD form; fetching, caching
// and retries all belong to the collaborators producing those inputs.
//
// A ticker without a quote falls back to its average price so balance math
// never multiplies by an undefined price. All four portfolio totals pass
// through Round2 here and only here.
func Assemble(
	transactions []Transaction,
	events []DividendEvent,
	quotes map[string]float64,
	metadata map[string]AssetMetadata,
	today string,
) PortfolioView {
	positions, salesGain := ComputePositions(transactions)
	receipts, paidByTicker, totalPaid := ComputeReceipts(events, transactions, today)

	invested := 0.0
	balance := 0.0

	assembled := make([]AssetPosition, 0, len(positions))
	for key, pos := range positions {
		p := *pos

		p.TotalDividends = Round2(paidByTicker[key])

		p.CurrentPrice = p.AveragePrice
		if quote, ok := quotes[key]; ok && quote > 0 {
			p.CurrentPrice = quote
		}

		p.Segment = DefaultSegment
		if meta, ok := metadata[key]; ok {
			if meta.Segment != "" {
				p.Segment = meta.Segment
			}
			p.PVP = meta.PVP
			p.PL = meta.PL
			p.DividendYield = meta.DividendYield
			p.Vacancy = meta.Vacancy
		}

		invested = Add(invested, p.TotalCost)
		balance = Add(balance, Mul(p.Quantity, p.CurrentPrice))

		assembled = append(assembled, p)
	}

	sort.Slice(assembled, func(i, j int) bool {
		return assembled[i].Ticker < assembled[j].Ticker
	})

	return PortfolioView{
		Positions: assembled,
		Receipts:  receipts,
		Totals: PortfolioTotals{
			Invested:               Round2(invested),
			Balance:                Round2(balance),
			TotalDividendsReceived: Round2(totalPaid),
			SalesGain:              Round2(salesGain),
		},
	}
}
