package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"currconv/internal/domain"
)

// HistoryRepository is the structured primary tier of conversion-history
// persistence, keyed by record id.
type HistoryRepository struct {
	pool *pgxpool.Pool
}

func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

func (r *HistoryRepository) GetAll(ctx context.Context) ([]domain.ConversionRecord, error) {
	const q = `
        select id, from_code, to_code, amount, rate, converted, date_used, coalesce(date_selected, ''), created_at
        from conversions;
    `

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to select conversion records: %w", err)
	}
	defer rows.Close()

	var records []domain.ConversionRecord
	for rows.Next() {
		var rec domain.ConversionRecord
		if err = rows.Scan(
			&rec.ID,
			&rec.From,
			&rec.To,
			&rec.Amount,
			&rec.Rate,
			&rec.Converted,
			&rec.DateUsed,
			&rec.DateSelected,
			&rec.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan conversion record: %w", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read conversion records: %w", err)
	}
	return records, nil
}

func (r *HistoryRepository) Add(ctx context.Context, record domain.ConversionRecord) error {
	const q = `
        insert into conversions (id, from_code, to_code, amount, rate, converted, date_used, date_selected, created_at)
        values ($1, $2, $3, $4, $5, $6, $7, nullif($8, ''), $9);
    `

	if _, err := r.pool.Exec(ctx, q,
		record.ID,
		record.From,
		record.To,
		record.Amount,
		record.Rate,
		record.Converted,
		record.DateUsed,
		record.DateSelected,
		record.Timestamp,
	); err != nil {
		return fmt.Errorf("failed to insert conversion record %q: %w", record.ID, err)
	}
	return nil
}
