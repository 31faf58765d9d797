package product

import "context"

// Repository defines the catalog storage operations.
// Create returns ErrProductExists when the id is already taken.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	Exists(ctx context.Context, id string) (bool, error)
	ListByType(ctx context.Context, productType string) ([]Product, error)
}
