package dao

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InboundRow struct {
	ReceiptID    string
	ItemID       string
	ItemCode     string
	ItemName     string
	Unit         string
	Quantity     decimal.Decimal
	EmployeeName string
	CreatedAt    time.Time
}

type OutboundRow struct {
	LineID       string
	SaleID       string
	ItemID       string
	ItemCode     string
	ItemName     string
	Unit         string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	EmployeeName string
	CreatedAt    time.Time
}

type SaleRow struct {
	SaleID       string
	Note         string
	CashTendered decimal.Decimal
	EmployeeName string
	CreatedAt    time.Time
}

type SaleLineRow struct {
	LineID    string
	SaleID    string
	ItemID    string
	ItemName  string
	Unit      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

type TopItemRow struct {
	ItemID   string
	ItemName string
	Quantity decimal.Decimal
	Revenue  decimal.Decimal
}

// ReportDAO runs the read-only history queries. Nothing here takes locks.
type ReportDAO struct {
	db *gorm.DB
}

func NewReportDAO(db *gorm.DB) *ReportDAO {
	return &ReportDAO{
		db: db,
	}
}

func (d *ReportDAO) ListInbound(ctx context.Context, q ListQuery) ([]InboundRow, int64, error) {
	base := d.db.WithContext(ctx).Table("stock_receipts AS r").
		Joins("JOIN items i ON i.id = r.item_id").
		Joins("JOIN employees e ON e.id = r.employee_id")
	if q.Search != "" {
		like := q.like()
		base = base.Where("i.name ILIKE ? OR i.code ILIKE ? OR e.name ILIKE ?", like, like, like)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []InboundRow
	err := base.Select(`r.id AS receipt_id, r.item_id, COALESCE(i.code, '') AS item_code,
		i.name AS item_name, i.unit, r.quantity, e.name AS employee_name, r.created_at`).
		Order("r.created_at DESC").Order("r.id DESC").
		Limit(q.Limit).Offset(q.Offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (d *ReportDAO) ListOutbound(ctx context.Context, q ListQuery) ([]OutboundRow, int64, error) {
	base := d.db.WithContext(ctx).Table("sale_lines AS l").
		Joins("JOIN sales s ON s.id = l.sale_id").
		Joins("JOIN items i ON i.id = l.item_id").
		Joins("JOIN employees e ON e.id = s.employee_id")
	if q.Search != "" {
		like := q.like()
		base = base.Where("i.name ILIKE ? OR i.code ILIKE ? OR e.name ILIKE ?", like, like, like)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []OutboundRow
	err := base.Select(`l.id AS line_id, l.sale_id, l.item_id, COALESCE(i.code, '') AS item_code,
		i.name AS item_name, i.unit, l.quantity, l.unit_price, e.name AS employee_name, s.created_at`).
		Order("s.created_at DESC").Order("s.id DESC").Order("l.position ASC").
		Limit(q.Limit).Offset(q.Offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// ListSales returns one page of sale headers and every line belonging to
// the sales on that page.
func (d *ReportDAO) ListSales(ctx context.Context, q ListQuery) ([]SaleRow, []SaleLineRow, int64, error) {
	base := d.db.WithContext(ctx).Table("sales AS s").
		Joins("JOIN employees e ON e.id = s.employee_id")
	if q.Search != "" {
		like := q.like()
		base = base.Where("s.id ILIKE ? OR s.note ILIKE ? OR e.name ILIKE ?", like, like, like)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, nil, 0, err
	}

	var sales []SaleRow
	err := base.Select("s.id AS sale_id, s.note, s.cash_tendered, e.name AS employee_name, s.created_at").
		Order("s.created_at DESC").Order("s.id DESC").
		Limit(q.Limit).Offset(q.Offset).
		Scan(&sales).Error
	if err != nil {
		return nil, nil, 0, err
	}
	if len(sales) == 0 {
		return sales, nil, total, nil
	}

	ids := make([]string, 0, len(sales))
	for _, s := range sales {
		ids = append(ids, s.SaleID)
	}

	var lines []SaleLineRow
	err = d.db.WithContext(ctx).Table("sale_lines AS l").
		Joins("JOIN items i ON i.id = l.item_id").
		Select("l.id AS line_id, l.sale_id, l.item_id, i.name AS item_name, i.unit, l.quantity, l.unit_price").
		Where("l.sale_id IN ?", ids).
		Order("l.sale_id ASC").Order("l.position ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, nil, 0, err
	}

	return sales, lines, total, nil
}

func (d *ReportDAO) SalesOverview(ctx context.Context, topN int) (int64, decimal.Decimal, []TopItemRow, error) {
	var count int64
	if err := d.db.WithContext(ctx).Table("sales").Count(&count).Error; err != nil {
		return 0, decimal.Zero, nil, err
	}

	var revenue decimal.Decimal
	err := d.db.WithContext(ctx).Table("sale_lines").
		Select("COALESCE(SUM(quantity * unit_price), 0)").
		Row().Scan(&revenue)
	if err != nil {
		return 0, decimal.Zero, nil, err
	}

	var top []TopItemRow
	err = d.db.WithContext(ctx).Table("sale_lines AS l").
		Joins("JOIN items i ON i.id = l.item_id").
		Select("l.item_id, i.name AS item_name, SUM(l.quantity) AS quantity, SUM(l.quantity * l.unit_price) AS revenue").
		Group("l.item_id, i.name").
		Order("quantity DESC").Order("l.item_id ASC").
		Limit(topN).
		Scan(&top).Error
	if err != nil {
		return 0, decimal.Zero, nil, err
	}

	return count, revenue, top, nil
}
