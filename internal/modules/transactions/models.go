package transactions

import (
	"fmt"
	"strings"

	"github.com/carteira-app/carteira/internal/modules/accounting"
)

// Validate checks a transaction before it is written to the store. The
// accounting engine itself never rejects records, so bad input has to be
// stopped here at the persistence boundary.
func Validate(tx *accounting.Transaction) error {
	if strings.TrimSpace(tx.Ticker) == "" {
		return fmt.Errorf("ticker cannot be empty")
	}

	if !tx.Type.IsValid() {
		return fmt.Errorf("invalid transaction type: %q", tx.Type)
	}

	if tx.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	if tx.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}

	if _, ok := accounting.ParseLocalDate(tx.Date); !ok {
		return fmt.Errorf("invalid date: %q (want YYYY-MM-DD)", tx.Date)
	}

	if tx.Class != accounting.AssetStock && tx.Class != accounting.AssetFund {
		return fmt.Errorf("invalid asset class: %q", tx.Class)
	}

	return nil
}
