// Package refdata fetches the external facts required by the rent formulas:
// the mortgage reference rate, the current date, and the consumer price
// index. Each fetch produces a fresh snapshot; nothing is cached.
package refdata

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/swissrent/mietzins/internal/config"
)

// Stage-naming sentinel errors so a caller can tell which source failed.
var (
	ErrMortgageSource  = errors.New("mortgage reference rate source")
	ErrInflationSource = errors.New("inflation index source")
)

// ReferenceData is an immutable snapshot of the externally sourced facts.
type ReferenceData struct {
	MortgageRate   float64   `json:"mortgageRate"` // percent
	AsOf           time.Time `json:"asOf"`
	InflationIndex float64   `json:"inflationIndex"`
}

// RateRow is one row of the published reference-rate table.
type RateRow struct {
	Rate          float64 // percent
	EffectiveDate time.Time
}

// Fetcher retrieves reference data from the configured remote sources.
type Fetcher struct {
	client         *http.Client
	mortgageURL    string
	inflationURL   string
	inflationSheet string
	logger         *zap.Logger
	now            func() time.Time
}

// NewFetcher constructs a Fetcher from the loaded configuration.
func NewFetcher(conf *config.Configuration, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		client:         &http.Client{Timeout: conf.HTTPTimeout()},
		mortgageURL:    conf.Sources.MortgageRateURL,
		inflationURL:   conf.Sources.InflationIndexURL,
		inflationSheet: conf.Sources.InflationSheet,
		logger:         logger,
		now:            time.Now,
	}
}

// Fetch retrieves the mortgage reference rate and the inflation index. The
// two remote fetches run concurrently; the first failure cancels the other
// and fails the whole fetch.
func (f *Fetcher) Fetch(ctx context.Context) (ReferenceData, error) {
	var data ReferenceData

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rate, err := f.FetchMortgageRate(ctx)
		if err != nil {
			return err
		}
		data.MortgageRate = rate
		return nil
	})
	g.Go(func() error {
		index, err := f.FetchInflationIndex(ctx)
		if err != nil {
			return err
		}
		data.InflationIndex = index
		return nil
	})
	if err := g.Wait(); err != nil {
		return ReferenceData{}, err
	}

	data.AsOf = f.now()
	return data, nil
}
