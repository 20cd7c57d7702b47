package pricedb

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"

	"github.com/mtlprog/stockstat/internal/domain"
)

// Repository reads daily closes from the daily_prices table.
type Repository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewRepository creates a Repository over pool. The daily_prices table must already exist.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool, now: time.Now}
}

// Fetch returns the closes for symbol on or after the start of period, oldest first.
// A symbol with no rows in the window yields domain.ErrNoData.
func (r *Repository) Fetch(ctx context.Context, symbol string, period domain.Period) (domain.PriceSeries, error) {
	series := domain.PriceSeries{Symbol: symbol}
	since := period.Since(r.now().UTC())

	rows, err := r.pool.Query(ctx, `
		SELECT trade_date, close
		FROM daily_prices
		WHERE symbol = $1 AND trade_date >= $2
		ORDER BY trade_date`, symbol, since)
	if err != nil {
		return series, fmt.Errorf("querying daily prices for %s: %w", symbol, err)
	}

	obs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Observation, error) {
		var o domain.Observation
		err := row.Scan(&o.Date, &o.Close)
		return o, err
	})
	if err != nil {
		return series, fmt.Errorf("scanning daily prices for %s: %w", symbol, err)
	}

	series.Observations = finiteOnly(symbol, obs)
	if series.Empty() {
		return series, fmt.Errorf("%s since %s: %w", symbol, since.Format(time.DateOnly), domain.ErrNoData)
	}
	return series, nil
}

// Save upserts the observations of series, one row per trading day.
func (r *Repository) Save(ctx context.Context, series domain.PriceSeries) (int, error) {
	obs := finiteOnly(series.Symbol, series.Observations)
	if len(obs) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, o := range obs {
		batch.Queue(`
			INSERT INTO daily_prices (symbol, trade_date, close)
			VALUES ($1, $2, $3)
			ON CONFLICT (symbol, trade_date) DO UPDATE
			SET close = EXCLUDED.close, updated_at = NOW()`,
			series.Symbol, o.Date, o.Close)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range obs {
		if _, err := br.Exec(); err != nil {
			return 0, fmt.Errorf("upserting daily prices for %s: %w", series.Symbol, err)
		}
	}
	return len(obs), nil
}

// finiteOnly drops NaN and infinite closes, which cannot take part in the statistics.
func finiteOnly(symbol string, obs []domain.Observation) []domain.Observation {
	kept := lo.Filter(obs, func(o domain.Observation, _ int) bool {
		return !math.IsNaN(o.Close) && !math.IsInf(o.Close, 0)
	})
	if dropped := len(obs) - len(kept); dropped > 0 {
		slog.Warn("dropped non-finite closes", "symbol", symbol, "count", dropped)
	}
	return kept
}
