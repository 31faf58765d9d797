package repository

import (
	"context"
	"fmt"

	"labtrack/internal/domain/report"
	"labtrack/internal/infrastructure/database"
)

type reportRepository struct {
	db *database.DB
}

// NewReportRepository creates a repository over the test_reports table
func NewReportRepository(db *database.DB) report.Repository {
	return &reportRepository{db: db}
}

func (r *reportRepository) List(ctx context.Context) ([]report.Report, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, date FROM test_reports ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	reports := []report.Report{}
	for rows.Next() {
		var rep report.Report
		if err := rows.Scan(&rep.ID, &rep.Title, &rep.Description, &rep.Date); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}
