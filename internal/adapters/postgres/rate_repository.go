package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"p2parb/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RateRepository persists the latest known FX rate per currency so the store
// can be seeded after a restart. Only the last value is kept.
type RateRepository struct {
	pool *pgxpool.Pool
}

type rateRow struct {
	Currency  string    `json:"currency"`
	Reference string    `json:"reference"`
	Value     float64   `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *RateRepository) SaveRates(ctx context.Context, rates []domain.Rate) error {
	if len(rates) == 0 {
		return nil
	}

	rows := make([]rateRow, 0, len(rates))
	for _, rt := range rates {
		rows = append(rows, rateRow{Currency: rt.Currency, Reference: rt.Reference, Value: rt.Value, UpdatedAt: rt.UpdatedAt})
	}
	payloadJSON, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal rates: %w", err)
	}

	const q = `
		insert into fx_rates (currency, reference, value, updated_at)
		select ir.currency, ir.reference, ir.value, ir.updated_at
		from json_to_recordset($1::json) as ir(currency text, reference text, value numeric, updated_at timestamptz)
		on conflict (currency, reference) do update
		set value = excluded.value, updated_at = excluded.updated_at
		where fx_rates.updated_at <= excluded.updated_at;
	`
	if _, err = r.pool.Exec(ctx, q, json.RawMessage(payloadJSON)); err != nil {
		return fmt.Errorf("failed to upsert rates: %w", err)
	}
	return nil
}

func (r *RateRepository) LoadRates(ctx context.Context, reference string) ([]domain.Rate, error) {
	const q = `
		select currency, reference, value::float8, updated_at
		from fx_rates
		where reference = $1
		order by currency;
	`

	rows, err := r.pool.Query(ctx, q, reference)
	if err != nil {
		return nil, fmt.Errorf("failed to query rates for reference %q: %w", reference, err)
	}
	defer rows.Close()

	rates := make([]domain.Rate, 0, 8)
	for rows.Next() {
		var rt domain.Rate
		if err = rows.Scan(&rt.Currency, &rt.Reference, &rt.Value, &rt.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rate: %w", err)
		}
		rates = append(rates, rt)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rates: %w", err)
	}
	return rates, nil
}

func NewRateRepository(pool *pgxpool.Pool) *RateRepository {
	return &RateRepository{pool: pool}
}
