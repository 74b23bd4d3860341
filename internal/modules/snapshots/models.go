package snapshots

// Snapshot represents one day's portfolio summary
type Snapshot struct {
	Date      string  `json:"date"` // YYYY-MM-DD
	Invested  float64 `json:"invested"`
	Balance   float64 `json:"balance"`
	Dividends float64 `json:"dividends"`
	SalesGain float64 `json:"sales_gain"`
}

// HistoryReport is the snapshot series enriched with chart/statistics
// material for the dashboard
type HistoryReport struct {
	Series          []Snapshot `json:"series"`
	SmoothedBalance []float64  `json:"smoothed_balance,omitempty"`
	MeanDailyReturn float64    `json:"mean_daily_return"`
	Volatility      float64    `json:"volatility"` // annualized
}
