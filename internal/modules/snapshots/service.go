package snapshots

import (
	"fmt"

	"github.com/markcheno/go-talib"
	"github.com/rs/zerolog"

	"github.com/carteira-app/carteira/pkg/formulas"
)

// smaWindow is the smoothing window applied to the balance series
const smaWindow = 7

// Service builds history reports on top of the stored snapshot series
type Service struct {
	repo *Repository
	log  zerolog.Logger
}

// NewService creates a new snapshot service
func NewService(repo *Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("service", "snapshots").Logger(),
	}
}

// History returns the snapshot series for the last N days along with
// derived statistics. The smoothed balance is only produced once the
// series is long enough to fill the SMA window.
func (s *Service) History(days int) (HistoryReport, error) {
	series, err := s.repo.GetHistory(days)
	if err != nil {
		return HistoryReport{}, fmt.Errorf("failed to load snapshot history: %w", err)
	}

	report := HistoryReport{Series: series}
	if len(series) < 2 {
		return report, nil
	}

	balances := make([]float64, len(series))
	for i, snap := range series {
		balances[i] = snap.Balance
	}

	returns := formulas.DailyReturns(balances)
	report.MeanDailyReturn = formulas.Mean(returns)
	report.Volatility = formulas.AnnualizedVolatility(returns)

	if len(balances) >= smaWindow {
		report.SmoothedBalance = talib.Sma(balances, smaWindow)
	}

	return report, nil
}
