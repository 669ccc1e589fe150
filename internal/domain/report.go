package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type InboundEntry struct {
	ReceiptID    string          `json:"id"`
	ItemID       string          `json:"item_id"`
	ItemCode     string          `json:"item_code"`
	ItemName     string          `json:"item_name"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity"`
	EmployeeName string          `json:"employee_name"`
	CreatedAt    time.Time       `json:"created_at"`
}

type OutboundEntry struct {
	LineID       string          `json:"id"`
	SaleID       string          `json:"sale_id"`
	ItemID       string          `json:"item_id"`
	ItemCode     string          `json:"item_code"`
	ItemName     string          `json:"item_name"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	EmployeeName string          `json:"employee_name"`
	CreatedAt    time.Time       `json:"created_at"`
}

type SaleSummary struct {
	SaleID       string          `json:"id"`
	Note         string          `json:"note"`
	EmployeeName string          `json:"employee_name"`
	CashTendered decimal.Decimal `json:"cash_tendered"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"created_at"`
	Lines        []ReceiptLine   `json:"lines"`
}

type TopItem struct {
	ItemID   string          `json:"item_id"`
	ItemName string          `json:"item_name"`
	Quantity decimal.Decimal `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type SalesOverview struct {
	SaleCount int64           `json:"sale_count"`
	Revenue   decimal.Decimal `json:"revenue"`
	TopItems  []TopItem       `json:"top_items"`
}
