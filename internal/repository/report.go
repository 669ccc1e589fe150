package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/simplepos/pos-api/internal/domain"
	"github.com/simplepos/pos-api/internal/repository/dao"
)

type ReportDAO interface {
	ListInbound(ctx context.Context, q dao.ListQuery) ([]dao.InboundRow, int64, error)
	ListOutbound(ctx context.Context, q dao.ListQuery) ([]dao.OutboundRow, int64, error)
	ListSales(ctx context.Context, q dao.ListQuery) ([]dao.SaleRow, []dao.SaleLineRow, int64, error)
	SalesOverview(ctx context.Context, topN int) (int64, decimal.Decimal, []dao.TopItemRow, error)
}

type ReportRepository struct {
	dao ReportDAO
}

func NewReportRepository(dao ReportDAO) *ReportRepository {
	return &ReportRepository{
		dao: dao,
	}
}

func (r *ReportRepository) ListInbound(ctx context.Context, q domain.PageQuery) (domain.Page[domain.InboundEntry], error) {
	rows, total, err := r.dao.ListInbound(ctx, toListQuery(q))
	if err != nil {
		return domain.Page[domain.InboundEntry]{}, fmt.Errorf("r.dao.ListInbound -> %w", err)
	}

	entries := make([]domain.InboundEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.InboundEntry{
			ReceiptID:    row.ReceiptID,
			ItemID:       row.ItemID,
			ItemCode:     row.ItemCode,
			ItemName:     row.ItemName,
			Unit:         row.Unit,
			Quantity:     row.Quantity,
			EmployeeName: row.EmployeeName,
			CreatedAt:    row.CreatedAt,
		})
	}

	return domain.NewPage(entries, q, total), nil
}

func (r *ReportRepository) ListOutbound(ctx context.Context, q domain.PageQuery) (domain.Page[domain.OutboundEntry], error) {
	rows, total, err := r.dao.ListOutbound(ctx, toListQuery(q))
	if err != nil {
		return domain.Page[domain.OutboundEntry]{}, fmt.Errorf("r.dao.ListOutbound -> %w", err)
	}

	entries := make([]domain.OutboundEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.OutboundEntry{
			LineID:       row.LineID,
			SaleID:       row.SaleID,
			ItemID:       row.ItemID,
			ItemCode:     row.ItemCode,
			ItemName:     row.ItemName,
			Unit:         row.Unit,
			Quantity:     row.Quantity,
			UnitPrice:    row.UnitPrice,
			Subtotal:     row.Quantity.Mul(row.UnitPrice),
			EmployeeName: row.EmployeeName,
			CreatedAt:    row.CreatedAt,
		})
	}

	return domain.NewPage(entries, q, total), nil
}

func (r *ReportRepository) ListSales(ctx context.Context, q domain.PageQuery) (domain.Page[domain.SaleSummary], error) {
	sales, lines, total, err := r.dao.ListSales(ctx, toListQuery(q))
	if err != nil {
		return domain.Page[domain.SaleSummary]{}, fmt.Errorf("r.dao.ListSales -> %w", err)
	}

	bySale := make(map[string][]domain.ReceiptLine, len(sales))
	for _, l := range lines {
		bySale[l.SaleID] = append(bySale[l.SaleID], domain.ReceiptLine{
			LineID:    l.LineID,
			ItemID:    l.ItemID,
			ItemName:  l.ItemName,
			Unit:      l.Unit,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Quantity.Mul(l.UnitPrice),
		})
	}

	summaries := make([]domain.SaleSummary, 0, len(sales))
	for _, s := range sales {
		saleLines := bySale[s.SaleID]
		if saleLines == nil {
			saleLines = []domain.ReceiptLine{}
		}

		saleTotal := decimal.Zero
		for _, l := range saleLines {
			saleTotal = saleTotal.Add(l.Subtotal)
		}

		summaries = append(summaries, domain.SaleSummary{
			SaleID:       s.SaleID,
			Note:         s.Note,
			EmployeeName: s.EmployeeName,
			CashTendered: s.CashTendered,
			Total:        saleTotal,
			CreatedAt:    s.CreatedAt,
			Lines:        saleLines,
		})
	}

	return domain.NewPage(summaries, q, total), nil
}

func (r *ReportRepository) SalesOverview(ctx context.Context, topN int) (domain.SalesOverview, error) {
	count, revenue, rows, err := r.dao.SalesOverview(ctx, topN)
	if err != nil {
		return domain.SalesOverview{}, fmt.Errorf("r.dao.SalesOverview -> %w", err)
	}

	top := make([]domain.TopItem, 0, len(rows))
	for _, row := range rows {
		top = append(top, domain.TopItem{
			ItemID:   row.ItemID,
			ItemName: row.ItemName,
			Quantity: row.Quantity,
			Revenue:  row.Revenue,
		})
	}

	return domain.SalesOverview{
		SaleCount: count,
		Revenue:   revenue,
		TopItems:  top,
	}, nil
}
