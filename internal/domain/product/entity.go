package product

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultType is the catalog listed when no type is requested
const DefaultType = "core"

// Product is an entry of the product catalog
type Product struct {
	ID   string `json:"Id"`
	Name string `json:"product_name"`
	Type string `json:"type,omitempty"`
}

// AddProductRequest represents a request to add a product
type AddProductRequest struct {
	ProductName string `json:"productName"`
	ProductType string `json:"productType"`
}

// DeriveID builds the catalog id from a product name: the first letter of
// every whitespace-separated word is upper-cased and whitespace is dropped.
// "core pump v2" becomes "CorePumpV2".
func DeriveID(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, size := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(word[size:])
	}
	return b.String()
}
