package products

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a stock-keeping item sold or purchased by the owner.
// StockQuantity is a cached counter kept in lockstep with the stock
// movement log; it may go negative and the low-stock read path flags it.
type Product struct {
	ID                int64           `json:"id"`
	OwnerID           int64           `json:"-"`
	Name              string          `json:"name"`
	Category          *string         `json:"category,omitempty"`
	PurchasePrice     decimal.Decimal `json:"purchase_price"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	StockQuantity     int64           `json:"stock_quantity"`
	LowStockThreshold int64           `json:"low_stock_threshold"`
	TaxRate           decimal.Decimal `json:"tax_rate"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
