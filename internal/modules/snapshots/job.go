package snapshots

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/carteira-app/carteira/internal/events"
	"github.com/carteira-app/carteira/internal/modules/accounting"
)

// Assembler supplies the current portfolio view
type Assembler interface {
	Assemble() (accounting.PortfolioView, error)
}

// RecordJob persists one portfolio snapshot per run. Scheduled after
// market close so the day's row reflects the closing quotes; re-runs on
// the same day overwrite the row.
type RecordJob struct {
	assembler Assembler
	repo      *Repository
	events    *events.Manager
	log       zerolog.Logger
}

// NewRecordJob creates a new snapshot record job
func NewRecordJob(
	assembler Assembler,
	repo *Repository,
	eventManager *events.Manager,
	log zerolog.Logger,
) *RecordJob {
	return &RecordJob{
		assembler: assembler,
		repo:      repo,
		events:    eventManager,
		log:       log.With().Str("job", "snapshot_record").Logger(),
	}
}

// Name returns the job name
func (j *RecordJob) Name() string {
	return "snapshot_record"
}

// Run assembles the portfolio and stores today's snapshot
func (j *RecordJob) Run() error {
	view, err := j.assembler.Assemble()
	if err != nil {
		return fmt.Errorf("failed to assemble portfolio: %w", err)
	}

	snap := Snapshot{
		Date:      accounting.Today(),
		Invested:  view.Totals.Invested,
		Balance:   view.Totals.Balance,
		Dividends: view.Totals.TotalDividendsReceived,
		SalesGain: view.Totals.SalesGain,
	}

	if err := j.repo.Upsert(snap); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	j.events.Emit(events.SnapshotRecorded, "snapshots", map[string]interface{}{
		"date":    snap.Date,
		"balance": snap.Balance,
	})

	return nil
}
