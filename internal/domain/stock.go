package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockReceipt records stock added outside of a sale.
type StockReceipt struct {
	ID         string          `json:"id"`
	ItemID     string          `json:"item_id"`
	EmployeeID string          `json:"employee_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	CreatedAt  time.Time       `json:"created_at"`
}

type InboundResult struct {
	ItemID   string          `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
	Receipt  *StockReceipt   `json:"receipt,omitempty"`
}
