package models

import "errors"

type ProductStatus string

const (
	// Product statuses shown on the storefront
	ProductAvailable    ProductStatus = "available"       // Orderable
	ProductOutOfStock   ProductStatus = "out_of_stock"    // Listed but not orderable
	ProductBuyOneGetOne ProductStatus = "buy_one_get_one" // Orderable, promo badge
)

// Product is one row of the products table. Prices are whole taka.
type Product struct {
	ID          string        `json:"id,omitempty"`
	Name        string        `json:"name"`
	Features    string        `json:"features"`
	Calories    string        `json:"calories"`
	Price       int           `json:"price"`
	Image       string        `json:"image"`
	Description string        `json:"description"`
	Status      ProductStatus `json:"status"`
}

// EffectiveStatus treats a missing status column value as available.
func (p Product) EffectiveStatus() ProductStatus {
	if p.Status == "" {
		return ProductAvailable
	}
	return p.Status
}

func (p Product) Orderable() bool {
	return p.EffectiveStatus() != ProductOutOfStock
}

// MapProductStatus maps a raw string to a ProductStatus.
func MapProductStatus(status string) (ProductStatus, error) {
	switch ProductStatus(status) {
	case ProductAvailable:
		return ProductAvailable, nil
	case ProductOutOfStock:
		return ProductOutOfStock, nil
	case ProductBuyOneGetOne:
		return ProductBuyOneGetOne, nil
	default:
		return "", errors.New("invalid product status")
	}
}
