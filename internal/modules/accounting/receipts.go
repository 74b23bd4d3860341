package accounting

// ComputeReceipts resolves declared income events against actual holdings on
// each record date. Events where the holder owned nothing (or the rate is
// non-positive) produce no economic effect and are dropped, not kept as
// zero-value records.
//
// Receipts whose payment date is on or before today feed the per-ticker
// paid-total map and the grand total; future-dated receipts are still
// returned for forward-looking display but do not count as received yet.
// Dates compare as plain strings, valid because YYYY-MM-DD is
// lexicographically sortable.
func ComputeReceipts(events []DividendEvent, transactions []Transaction, today string) ([]DividendReceipt, map[string]float64, float64) {
	sorted := SortTransactions(transactions)

	receipts := make([]DividendReceipt, 0, len(events))
	paidByTicker := make(map[string]float64)
	totalPaid := 0.0

	for _, event := range events {
		key := NormalizeTicker(event.Ticker)

		owned := SharesHeldOn(key, event.RecordDate, sorted)
		if owned < 0 {
			owned = 0
		}

		total := Mul(owned, event.Rate)
		if total <= 0 {
			continue
		}

		receipt := DividendReceipt{
			DividendEvent: event,
			QuantityOwned: owned,
			TotalReceived: total,
		}
		receipt.Ticker = key
		receipts = append(receipts, receipt)

		if event.PaymentDate != "" && event.PaymentDate <= today {
			paidByTicker[key] = Add(paidByTicker[key], total)
			totalPaid = Add(totalPaid, total)
		}
	}

	return receipts, paidByTicker, totalPaid
}
