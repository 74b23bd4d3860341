package accounting

// SharesHeldOn reconstructs how many shares of a ticker were held at the end
// of asOfDate. This is the single source of truth for "who owned how much on
// which day" and drives dividend record-date eligibility.
//
// Transactions must already be sorted ascending by date (see
// SortTransactions); once they are, iteration can stop at the first
// transaction past the cutoff. Invalid ticker or date input fails closed and
// returns 0. The result may be fractional; entitlement is not floored here,
// that is a caller policy.
func SharesHeldOn(ticker, asOfDate string, transactions []Transaction) float64 {
	key := NormalizeTicker(ticker)
	if key == "" {
		return 0
	}

	cutoff, ok := SafeTimestamp(asOfDate)
	if !ok {
		return 0
	}

	held := 0.0
	for _, tx := range transactions {
		ts, ok := SafeTimestamp(tx.Date)
		if !ok {
			// Degrade gracefully: a single bad record is excluded, the rest
			// of the history still counts.
			continue
		}
		if ts > cutoff {
			break
		}
		if NormalizeTicker(tx.Ticker) != key {
			continue
		}

		switch tx.Type {
		case TransactionBuy:
			held = Add(held, tx.Quantity)
		case TransactionSell:
			held = Sub(held, tx.Quantity)
		}
	}

	return held
}
