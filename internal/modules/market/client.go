package market

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/carteira-app/carteira/internal/modules/accounting"
)

// Client is a brapi.dev API client for B3 quotes, fundamentals and
// dividend history
type Client struct {
	client  *http.Client
	baseURL string
	token   string
	log     zerolog.Logger
}

// NewClient creates a new brapi client
func NewClient(baseURL, token string, log zerolog.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		log:     log.With().Str("client", "brapi").Logger(),
	}
}

// GetQuotes fetches current market prices for a batch of tickers. Tickers
// brapi does not know are simply absent from the result, which downstream
// treats as "no quote" and falls back to average cost.
func (c *Client) GetQuotes(tickers []string) (map[string]float64, error) {
	if len(tickers) == 0 {
		return map[string]float64{}, nil
	}

	resp, err := c.fetchQuote(strings.Join(tickers, ","), false, false)
	if err != nil {
		return nil, err
	}

	quotes := make(map[string]float64, len(resp.Results))
	for _, result := range resp.Results {
		if result.RegularMarketPrice > 0 {
			quotes[accounting.NormalizeTicker(result.Symbol)] = result.RegularMarketPrice
		}
	}

	return quotes, nil
}

// GetMetadata fetches segment and fundamentals for one ticker
func (c *Client) GetMetadata(ticker string) (*accounting.AssetMetadata, error) {
	resp, err := c.fetchQuote(ticker, true, false)
	if err != nil {
		return nil, err
	}

	if len(resp.Results) == 0 {
		return nil, nil
	}

	result := resp.Results[0]
	return &accounting.AssetMetadata{
		Segment:       result.Sector,
		PVP:           result.PriceToBook,
		PL:            result.PriceEarnings,
		DividendYield: result.DividendYield,
	}, nil
}

// FetchDividendEvents fetches declared cash dividends for one ticker and
// maps them into engine events
func (c *Client) FetchDividendEvents(ticker string) ([]accounting.DividendEvent, error) {
	resp, err := c.fetchQuote(ticker, false, true)
	if err != nil {
		return nil, err
	}

	if len(resp.Results) == 0 || resp.Results[0].DividendsData == nil {
		return nil, nil
	}

	symbol := accounting.NormalizeTicker(resp.Results[0].Symbol)
	dividends := resp.Results[0].DividendsData.CashDividends

	events := make([]accounting.DividendEvent, 0, len(dividends))
	for _, d := range dividends {
		events = append(events, accounting.DividendEvent{
			Ticker:      symbol,
			Type:        incomeTypeFromLabel(d.Label),
			RecordDate:  isoDate(d.LastDatePrior),
			PaymentDate: isoDate(d.PaymentDate),
			Rate:        d.Rate,
		})
	}

	return events, nil
}

func (c *Client) fetchQuote(tickers string, fundamental, dividends bool) (*brapiQuoteResponse, error) {
	endpoint := fmt.Sprintf("%s/quote/%s", c.baseURL, url.PathEscape(tickers))

	params := url.Values{}
	if c.token != "" {
		params.Set("token", c.token)
	}
	if fundamental {
		params.Set("fundamental", "true")
	}
	if dividends {
		params.Set("dividends", "true")
	}
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	httpResp, err := c.client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("brapi request failed: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read brapi response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("brapi returned status %d: %s", httpResp.StatusCode, string(body))
	}

	var resp brapiQuoteResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode brapi response: %w", err)
	}

	if resp.Error != nil {
		return nil, fmt.Errorf("brapi error: %s", *resp.Error)
	}

	return &resp, nil
}

// incomeTypeFromLabel maps brapi dividend labels to engine income types
func incomeTypeFromLabel(label string) accounting.IncomeType {
	upper := strings.ToUpper(label)
	switch {
	case strings.Contains(upper, "JCP"), strings.Contains(upper, "JRS"), strings.Contains(upper, "JUROS"):
		return accounting.IncomeJCP
	case strings.Contains(upper, "RENDIMENTO"), strings.Contains(upper, "YIELD"):
		return accounting.IncomeYield
	default:
		return accounting.IncomeDividend
	}
}

// isoDate truncates brapi timestamps ("2024-05-31T00:00:00.000Z") to the
// engine's YYYY-MM-DD form
func isoDate(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}
