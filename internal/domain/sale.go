package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Sale struct {
	ID           string          `json:"id"`
	Note         string          `json:"note"`
	CashTendered decimal.Decimal `json:"cash_tendered"`
	EmployeeID   string          `json:"employee_id"`
	CreatedAt    time.Time       `json:"created_at"`
}

type SaleLine struct {
	ID        string          `json:"id"`
	SaleID    string          `json:"sale_id"`
	Position  int             `json:"position"`
	ItemID    string          `json:"item_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func (l SaleLine) Subtotal() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

type CartLine struct {
	ItemID   string
	Quantity decimal.Decimal
}

// Checkout is a cart submitted at the register.
type Checkout struct {
	Lines        []CartLine
	Note         string
	CashTendered decimal.Decimal
}

type Receipt struct {
	SaleID       string          `json:"id"`
	Note         string          `json:"note"`
	EmployeeName string          `json:"employee_name"`
	CreatedAt    time.Time       `json:"created_at"`
	CashTendered decimal.Decimal `json:"cash_tendered"`
	Total        decimal.Decimal `json:"total"`
	Change       decimal.Decimal `json:"change"`
	Lines        []ReceiptLine   `json:"lines"`
}

type ReceiptLine struct {
	LineID    string          `json:"id"`
	ItemID    string          `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}
