package product

import (
	"context"
	"strings"

	domain "labtrack/internal/domain/product"
)

// Service defines the product catalog operations
type Service interface {
	Add(ctx context.Context, req domain.AddProductRequest) (*domain.Product, error)
	List(ctx context.Context, productType string) ([]domain.Product, error)
}

type service struct {
	repo domain.Repository
}

// NewService creates a new product service
func NewService(repo domain.Repository) Service {
	return &service{repo: repo}
}

func (s *service) Add(ctx context.Context, req domain.AddProductRequest) (*domain.Product, error) {
	name := strings.TrimSpace(req.ProductName)
	id := domain.DeriveID(name)
	if id == "" {
		return nil, domain.ErrInvalidName
	}

	productType := strings.TrimSpace(req.ProductType)
	if productType == "" {
		productType = domain.DefaultType
	}

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrProductExists
	}

	p := &domain.Product{ID: id, Name: name, Type: productType}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) List(ctx context.Context, productType string) ([]domain.Product, error) {
	if productType == "" {
		productType = domain.DefaultType
	}
	return s.repo.ListByType(ctx, productType)
}
