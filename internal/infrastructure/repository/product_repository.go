package repository

import (
	"context"
	"fmt"

	"labtrack/internal/domain/product"
	"labtrack/internal/infrastructure/database"
)

type productRepository struct {
	db *database.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *database.DB) product.Repository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(
		`INSERT INTO productlist (id, product_name, type) VALUES (?, ?, ?)`),
		p.ID, p.Name, p.Type,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return product.ErrProductExists
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *productRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`SELECT COUNT(*) FROM productlist WHERE id = ?`), id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check product: %w", err)
	}
	return n > 0, nil
}

func (r *productRepository) ListByType(ctx context.Context, productType string) ([]product.Product, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(
		`SELECT id, product_name FROM productlist WHERE type = ? ORDER BY product_name`), productType)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []product.Product{}
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
