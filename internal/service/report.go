package service

import (
	"context"
	"fmt"

	"github.com/simplepos/pos-api/internal/domain"
)

const topItemsLimit = 5

type ReportRepository interface {
	ListInbound(ctx context.Context, q domain.PageQuery) (domain.Page[domain.InboundEntry], error)
	ListOutbound(ctx context.Context, q domain.PageQuery) (domain.Page[domain.OutboundEntry], error)
	ListSales(ctx context.Context, q domain.PageQuery) (domain.Page[domain.SaleSummary], error)
	SalesOverview(ctx context.Context, topN int) (domain.SalesOverview, error)
}

type ReportService struct {
	repo ReportRepository
}

func NewReportService(repo ReportRepository) *ReportService {
	return &ReportService{
		repo: repo,
	}
}

func (s *ReportService) InboundHistory(ctx context.Context, q domain.PageQuery) (domain.Page[domain.InboundEntry], error) {
	page, err := s.repo.ListInbound(ctx, q.Normalize())
	if err != nil {
		return domain.Page[domain.InboundEntry]{}, fmt.Errorf("s.repo.ListInbound -> %w", err)
	}

	return page, nil
}

func (s *ReportService) OutboundHistory(ctx context.Context, q domain.PageQuery) (domain.Page[domain.OutboundEntry], error) {
	page, err := s.repo.ListOutbound(ctx, q.Normalize())
	if err != nil {
		return domain.Page[domain.OutboundEntry]{}, fmt.Errorf("s.repo.ListOutbound -> %w", err)
	}

	return page, nil
}

func (s *ReportService) SalesHistory(ctx context.Context, q domain.PageQuery) (domain.Page[domain.SaleSummary], error) {
	page, err := s.repo.ListSales(ctx, q.Normalize())
	if err != nil {
		return domain.Page[domain.SaleSummary]{}, fmt.Errorf("s.repo.ListSales -> %w", err)
	}

	return page, nil
}

func (s *ReportService) SalesOverview(ctx context.Context) (domain.SalesOverview, error) {
	overview, err := s.repo.SalesOverview(ctx, topItemsLimit)
	if err != nil {
		return domain.SalesOverview{}, fmt.Errorf("s.repo.SalesOverview -> %w", err)
	}

	return overview, nil
}
