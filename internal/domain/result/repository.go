package result

import "context"

// Repository reads measurement rows
type Repository interface {
	ListByTest(ctx context.Context, testID int64) ([]Measurement, error)
}
