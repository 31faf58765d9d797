package product

import "errors"

var (
	ErrProductExists = errors.New("product already exists")
	ErrInvalidName   = errors.New("product name is required")
)
