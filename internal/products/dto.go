package products

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Name              string           `json:"name" validate:"required,max=255"`
	Category          *string          `json:"category,omitempty" validate:"omitempty,max=100"`
	PurchasePrice     decimal.Decimal  `json:"purchase_price"`
	SellingPrice      decimal.Decimal  `json:"selling_price"`
	StockQuantity     int64            `json:"stock_quantity"`
	LowStockThreshold *int64           `json:"low_stock_threshold,omitempty" validate:"omitempty,min=0"`
	TaxRate           *decimal.Decimal `json:"tax_rate,omitempty"`
}

type UpdateProductRequest struct {
	Name              *string          `json:"name,omitempty" validate:"omitempty,max=255"`
	Category          *string          `json:"category,omitempty" validate:"omitempty,max=100"`
	PurchasePrice     *decimal.Decimal `json:"purchase_price,omitempty"`
	SellingPrice      *decimal.Decimal `json:"selling_price,omitempty"`
	StockQuantity     *int64           `json:"stock_quantity,omitempty"`
	LowStockThreshold *int64           `json:"low_stock_threshold,omitempty" validate:"omitempty,min=0"`
	TaxRate           *decimal.Decimal `json:"tax_rate,omitempty"`
}

type ListProductsRequest struct {
	OwnerID  int64
	Category *string
	Search   *string
	LowStock bool
}
