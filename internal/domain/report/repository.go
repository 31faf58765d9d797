package report

import "context"

// Repository reads reports
type Repository interface {
	List(ctx context.Context) ([]Report, error)
}
