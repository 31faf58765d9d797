package labtest

import "context"

// Repository reads test records
type Repository interface {
	List(ctx context.Context) ([]Test, error)
	ListByProduct(ctx context.Context, product string) ([]Test, error)
	GetByID(ctx context.Context, id int64) (*Test, error)
}
