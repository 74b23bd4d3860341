package accounting

import (
	"fmt"
	"strings"
)

// TransactionType represents the trade direction (BUY or SELL)
type TransactionType string

const (
	TransactionBuy  TransactionType = "BUY"
	TransactionSell TransactionType = "SELL"
)

// IsValid checks if the transaction type is valid
func (t TransactionType) IsValid() bool {
	return t == TransactionBuy || t == TransactionSell
}

// IsBuy returns true if this is a BUY transaction
func (t TransactionType) IsBuy() bool {
	return t == TransactionBuy
}

// IsSell returns true if this is a SELL transaction
func (t TransactionType) IsSell() bool {
	return t == TransactionSell
}

// TransactionTypeFromString creates a TransactionType from a string (case-insensitive)
func TransactionTypeFromString(value string) (TransactionType, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "BUY":
		return TransactionBuy, nil
	case "SELL":
		return TransactionSell, nil
	default:
		return "", fmt.Errorf("invalid transaction type: %q", value)
	}
}

// AssetClass categorizes the asset. Informational only, it never affects
// the arithmetic.
type AssetClass string

const (
	AssetStock AssetClass = "STOCK"
	AssetFund  AssetClass = "FUND"
)

// IncomeType classifies a dividend/income event
type IncomeType string

const (
	IncomeDividend IncomeType = "DIVIDEND"
	IncomeJCP      IncomeType = "JCP" // juros sobre capital próprio
	IncomeYield    IncomeType = "YIELD"
)

// Transaction is an immutable record of one trade. The engine only reads
// transactions, it never mutates them.
type Transaction struct {
	ID       string          `json:"id"`
	Ticker   string          `json:"ticker"`
	Type     TransactionType `json:"type"`
	Quantity float64         `json:"quantity"`
	Price    float64         `json:"price"`
	Date     string          `json:"date"` // YYYY-MM-DD, no time component
	Class    AssetClass      `json:"asset_class"`
}

// DividendEvent is a declared income event for an asset, supplied by an
// external market-data source. Read-only to the engine.
type DividendEvent struct {
	Ticker      string     `json:"ticker"`
	Type        IncomeType `json:"type"`
	RecordDate  string     `json:"record_date"`  // data com: holding on this date determines eligibility
	PaymentDate string     `json:"payment_date"` // when cash is received
	Rate        float64    `json:"rate"`         // amount per share
}

// DividendReceipt is a DividendEvent resolved against the holder's actual
// position on the record date.
type DividendReceipt struct {
	DividendEvent
	QuantityOwned float64 `json:"quantity_owned"`
	TotalReceived float64 `json:"total_received"`
}

// AssetMetadata carries report-enrichment data per ticker. The engine does
// not validate or transform these fields, they are passthrough.
type AssetMetadata struct {
	Segment       string   `json:"segment,omitempty"`
	PVP           *float64 `json:"p_vp,omitempty"`
	PL            *float64 `json:"p_l,omitempty"`
	DividendYield *float64 `json:"dividend_yield,omitempty"`
	Vacancy       *float64 `json:"vacancy,omitempty"`
}

// AssetPosition is the aggregated holding of one ticker as of "now".
// Recomputed from scratch on every assembly, never persisted incrementally.
type AssetPosition struct {
	Ticker         string     `json:"ticker"`
	Class          AssetClass `json:"asset_class"`
	Quantity       float64    `json:"quantity"`
	AveragePrice   float64    `json:"average_price"`
	TotalCost      float64    `json:"total_cost"`
	TotalDividends float64    `json:"total_dividends"`
	CurrentPrice   float64    `json:"current_price"`
	Segment        string     `json:"segment"`
	PVP            *float64   `json:"p_vp,omitempty"`
	PL             *float64   `json:"p_l,omitempty"`
	DividendYield  *float64   `json:"dividend_yield,omitempty"`
	Vacancy        *float64   `json:"vacancy,omitempty"`
}

// PortfolioTotals aggregates portfolio-level figures, rounded to cents at
// the reporting boundary.
type PortfolioTotals struct {
	Invested               float64 `json:"invested"`
	Balance                float64 `json:"balance"`
	TotalDividendsReceived float64 `json:"total_dividends_received"`
	SalesGain              float64 `json:"sales_gain"`
}

// PortfolioView is the final reporting view produced by Assemble.
type PortfolioView struct {
	Positions []AssetPosition   `json:"positions"`
	Receipts  []DividendReceipt `json:"receipts"`
	Totals    PortfolioTotals   `json:"totals"`
}
