package repository

import (
	"context"
	"fmt"

	"labtrack/internal/domain/result"
	"labtrack/internal/infrastructure/database"
)

type resultRepository struct {
	db *database.DB
}

// NewResultRepository creates a repository over the results table
func NewResultRepository(db *database.DB) result.Repository {
	return &resultRepository{db: db}
}

func (r *resultRepository) ListByTest(ctx context.Context, testID int64) ([]result.Measurement, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(
		`SELECT Head, Voltage, Current, T1, T2, Time, Power, Flowrate, Efficiency
		 FROM results WHERE TestId = ? ORDER BY id`), testID)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	measurements := []result.Measurement{}
	for rows.Next() {
		var m result.Measurement
		if err := rows.Scan(&m.Head, &m.Voltage, &m.Current, &m.T1, &m.T2,
			&m.Time, &m.Power, &m.Flowrate, &m.Efficiency); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		measurements = append(measurements, m)
	}
	return measurements, rows.Err()
}
