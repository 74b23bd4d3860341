package accounting

import "sort"

// quantityEpsilon absorbs floating residue after a liquidating sale. A
// position at or below this is treated as fully closed.
const quantityEpsilon = 1e-9

// SortTransactions returns a copy of the transaction list sorted ascending
// by date. The sort is stable, so same-day transactions keep their insertion
// order as the explicit tie-break, since average-cost math is
// order-sensitive within a day. The input slice is left untouched.
func SortTransactions(transactions []Transaction) []Transaction {
	sorted := make([]Transaction, len(transactions))
	copy(sorted, transactions)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	return sorted
}

// ComputePositions folds the full transaction history into per-ticker
// positions (quantity, weighted average cost, total cost) and returns the
// cumulative realized gain from sales.
//
// Cost-basis rules:
//   - BUY moves total cost and quantity, then recomputes the weighted
//     average price. Average price never changes on a SELL.
//   - SELL realizes (price - averagePrice) * quantity and shrinks the cost
//     basis proportionally by recomputing quantity * averagePrice.
//   - A SELL larger than the held quantity is clamped: gain is realized only
//     on the shares actually held and the position is fully liquidated.
//     Short positions are not supported, quantity never goes negative.
//   - Full liquidation resets quantity, average price and total cost to
//     exact zero, so no residual floating error is carried forward.
//
// Positions whose final quantity is zero are excluded from the result.
func ComputePositions(transactions []Transaction) (map[string]*AssetPosition, float64) {
	sorted := SortTransactions(transactions)

	positions := make(map[string]*AssetPosition)
	salesGain := 0.0

	for _, tx := range sorted {
		if _, ok := SafeTimestamp(tx.Date); !ok {
			continue
		}

		key := NormalizeTicker(tx.Ticker)
		pos, ok := positions[key]
		if !ok {
			pos = &AssetPosition{Ticker: key, Class: tx.Class}
			positions[key] = pos
		}

		switch tx.Type {
		case TransactionBuy:
			pos.TotalCost = Add(pos.TotalCost, Mul(tx.Quantity, tx.Price))
			pos.Quantity = Add(pos.Quantity, tx.Quantity)
			if pos.Quantity > 0 {
				pos.AveragePrice = Div(pos.TotalCost, pos.Quantity)
			}

		case TransactionSell:
			sold := tx.Quantity
			if sold > pos.Quantity {
				sold = pos.Quantity
			}
			salesGain = Add(salesGain, Mul(Sub(tx.Price, pos.AveragePrice), sold))

			pos.Quantity = Sub(pos.Quantity, sold)
			pos.TotalCost = Mul(pos.Quantity, pos.AveragePrice)

			if pos.Quantity <= quantityEpsilon {
				pos.Quantity = 0
				pos.AveragePrice = 0
				pos.TotalCost = 0
			}
		}
	}

	for key, pos := range positions {
		if pos.Quantity <= 0 {
			delete(positions, key)
		}
	}

	return positions, salesGain
}
