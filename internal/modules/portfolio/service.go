package portfolio

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/carteira-app/carteira/internal/modules/accounting"
)

// TransactionSource supplies the complete transaction history
type TransactionSource interface {
	GetAll() ([]accounting.Transaction, error)
}

// EventSource supplies the complete dividend/income event list
type EventSource interface {
	GetAll() ([]accounting.DividendEvent, error)
}

// MarketData supplies quotes and enrichment metadata for held tickers
type MarketData interface {
	QuoteMap(tickers []string) map[string]float64
	MetadataMap(tickers []string) map[string]accounting.AssetMetadata
}

// Service orchestrates the portfolio assembly: it gathers the complete
// inputs from the collaborators and hands them to the pure accounting
// engine. All I/O stays here; the engine itself never fetches anything.
type Service struct {
	transactions TransactionSource
	incomeEvents EventSource
	market       MarketData
	log          zerolog.Logger
}

// NewService creates a new portfolio service
func NewService(
	transactions TransactionSource,
	incomeEvents EventSource,
	market MarketData,
	log zerolog.Logger,
) *Service {
	return &Service{
		transactions: transactions,
		incomeEvents: incomeEvents,
		market:       market,
		log:          log.With().Str("service", "portfolio").Logger(),
	}
}

// Assemble computes the current portfolio view from scratch
func (s *Service) Assemble() (accounting.PortfolioView, error) {
	return s.AssembleAsOf(accounting.Today())
}

// AssembleAsOf computes the portfolio view with an explicit "today",
// which keeps the computation deterministic for snapshots and tests
func (s *Service) AssembleAsOf(today string) (accounting.PortfolioView, error) {
	txs, err := s.transactions.GetAll()
	if err != nil {
		return accounting.PortfolioView{}, fmt.Errorf("failed to load transactions: %w", err)
	}

	events, err := s.incomeEvents.GetAll()
	if err != nil {
		return accounting.PortfolioView{}, fmt.Errorf("failed to load income events: %w", err)
	}

	// Quotes and metadata are only needed for tickers still held.
	positions, _ := accounting.ComputePositions(txs)
	tickers := make([]string, 0, len(positions))
	for ticker := range positions {
		tickers = append(tickers, ticker)
	}

	quotes := s.market.QuoteMap(tickers)
	metadata := s.market.MetadataMap(tickers)

	view := accounting.Assemble(txs, events, quotes, metadata, today)

	s.log.Debug().
		Int("positions", len(view.Positions)).
		Int("receipts", len(view.Receipts)).
		Float64("balance", view.Totals.Balance).
		Msg("Portfolio assembled")

	return view, nil
}
