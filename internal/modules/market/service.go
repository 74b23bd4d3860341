package market

import (
	"github.com/rs/zerolog"

	"github.com/carteira-app/carteira/internal/modules/accounting"
)

// QuoteClient is the remote market-data source behind the service
type QuoteClient interface {
	GetQuotes(tickers []string) (map[string]float64, error)
	GetMetadata(ticker string) (*accounting.AssetMetadata, error)
}

// Service answers quote and metadata lookups for the portfolio assembler,
// serving from the TTL cache before hitting the remote API. A ticker the
// remote does not know is a normal case: it is simply absent from the
// returned maps and the engine falls back to average cost / default
// segment.
type Service struct {
	client QuoteClient
	cache  Cache
	log    zerolog.Logger
}

// NewService creates a new market data service
func NewService(client QuoteClient, cache Cache, log zerolog.Logger) *Service {
	return &Service{
		client: client,
		cache:  cache,
		log:    log.With().Str("service", "market").Logger(),
	}
}

// QuoteMap returns current prices for the given tickers, keyed by
// normalized symbol
func (s *Service) QuoteMap(tickers []string) map[string]float64 {
	quotes := make(map[string]float64, len(tickers))

	var missing []string
	for _, ticker := range tickers {
		key := accounting.NormalizeTicker(ticker)
		if cached, ok := s.cache.Get("quote:" + key); ok {
			if price, ok := cached.(float64); ok {
				quotes[key] = price
				continue
			}
		}
		missing = append(missing, key)
	}

	if len(missing) == 0 {
		return quotes
	}

	fetched, err := s.client.GetQuotes(missing)
	if err != nil {
		// Degraded output beats none: the engine falls back to average
		// cost for the tickers we could not quote.
		s.log.Warn().Err(err).Strs("tickers", missing).Msg("Quote fetch failed")
		return quotes
	}

	for key, price := range fetched {
		quotes[key] = price
		s.cache.Set("quote:"+key, price)
	}

	return quotes
}

// MetadataMap returns segment/fundamental enrichment for the given
// tickers, keyed by normalized symbol
func (s *Service) MetadataMap(tickers []string) map[string]accounting.AssetMetadata {
	metadata := make(map[string]accounting.AssetMetadata, len(tickers))

	for _, ticker := range tickers {
		key := accounting.NormalizeTicker(ticker)

		if cached, ok := s.cache.Get("meta:" + key); ok {
			if meta, ok := cached.(accounting.AssetMetadata); ok {
				metadata[key] = meta
				continue
			}
		}

		meta, err := s.client.GetMetadata(key)
		if err != nil {
			s.log.Warn().Err(err).Str("ticker", key).Msg("Metadata fetch failed")
			continue
		}
		if meta == nil {
			continue
		}

		metadata[key] = *meta
		s.cache.Set("meta:"+key, *meta)
	}

	return metadata
}

// Invalidate drops all cached market data, forcing fresh fetches
func (s *Service) Invalidate() {
	s.cache.Clear()
	s.log.Debug().Msg("Market cache cleared")
}
