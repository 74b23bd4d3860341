package market

// brapiQuoteResponse represents the response from the brapi quote API
type brapiQuoteResponse struct {
	Results []brapiQuoteResult `json:"results"`
	Error   *string            `json:"error,omitempty"`
}

type brapiQuoteResult struct {
	Symbol             string              `json:"symbol"`
	RegularMarketPrice float64             `json:"regularMarketPrice"`
	PriceEarnings      *float64            `json:"priceEarnings,omitempty"`
	PriceToBook        *float64            `json:"priceToBook,omitempty"`
	DividendYield      *float64            `json:"dividendYield,omitempty"`
	Sector             string              `json:"sector,omitempty"`
	DividendsData      *brapiDividendsData `json:"dividendsData,omitempty"`
}

type brapiDividendsData struct {
	CashDividends []brapiCashDividend `json:"cashDividends"`
}

type brapiCashDividend struct {
	Label         string  `json:"label"`         // "DIVIDENDO", "JCP", "RENDIMENTO"
	LastDatePrior string  `json:"lastDatePrior"` // record date
	PaymentDate   string  `json:"paymentDate"`
	Rate          float64 `json:"rate"`
}
