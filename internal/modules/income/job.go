package income

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/carteira-app/carteira/internal/events"
	"github.com/carteira-app/carteira/internal/modules/accounting"
)

// EventFetcher supplies declared income events for a ticker from an
// external market-data source.
type EventFetcher interface {
	FetchDividendEvents(ticker string) ([]accounting.DividendEvent, error)
}

// TransactionSource supplies the full transaction history, used here to
// figure out which tickers are currently held.
type TransactionSource interface {
	GetAll() ([]accounting.Transaction, error)
}

// SyncJob refreshes income events for every held ticker
type SyncJob struct {
	fetcher      EventFetcher
	transactions TransactionSource
	repo         *Repository
	events       *events.Manager
	log          zerolog.Logger
}

// NewSyncJob creates a new income sync job
func NewSyncJob(
	fetcher EventFetcher,
	transactions TransactionSource,
	repo *Repository,
	eventManager *events.Manager,
	log zerolog.Logger,
) *SyncJob {
	return &SyncJob{
		fetcher:      fetcher,
		transactions: transactions,
		repo:         repo,
		events:       eventManager,
		log:          log.With().Str("job", "income_sync").Logger(),
	}
}

// Name returns the job name
func (j *SyncJob) Name() string {
	return "income_sync"
}

// Run fetches and stores income events for every currently held ticker.
// A failing ticker is logged and skipped so one flaky symbol cannot stall
// the whole sync.
func (j *SyncJob) Run() error {
	history, err := j.transactions.GetAll()
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	positions, _ := accounting.ComputePositions(history)
	if len(positions) == 0 {
		j.log.Debug().Msg("No held tickers, nothing to sync")
		return nil
	}

	j.events.Emit(events.IncomeSyncStart, "income", map[string]interface{}{
		"tickers": len(positions),
	})

	stored := 0
	failed := 0
	for ticker := range positions {
		fetched, err := j.fetcher.FetchDividendEvents(ticker)
		if err != nil {
			j.log.Warn().Err(err).Str("ticker", ticker).Msg("Failed to fetch income events")
			failed++
			continue
		}

		n, err := j.repo.UpsertAll(fetched)
		if err != nil {
			return fmt.Errorf("failed to store events for %s: %w", ticker, err)
		}
		stored += n
	}

	j.events.Emit(events.IncomeSyncComplete, "income", map[string]interface{}{
		"stored": stored,
		"failed": failed,
	})

	return nil
}
