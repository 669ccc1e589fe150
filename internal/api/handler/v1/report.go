package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simplepos/pos-api/internal/domain"
)

type ReportService interface {
	InboundHistory(ctx context.Context, q domain.PageQuery) (domain.Page[domain.InboundEntry], error)
	OutboundHistory(ctx context.Context, q domain.PageQuery) (domain.Page[domain.OutboundEntry], error)
	SalesHistory(ctx context.Context, q domain.PageQuery) (domain.Page[domain.SaleSummary], error)
	SalesOverview(ctx context.Context) (domain.SalesOverview, error)
}

type ReportHandler struct {
	svc ReportService
}

func NewReportHandler(svc ReportService) *ReportHandler {
	return &ReportHandler{
		svc: svc,
	}
}

// HandleInboundHistory godoc
// @Summary      Inbound stock history
// @Description  Newest first. Searches item name, code and employee name.
// @Tags         reports
// @Produce      json
// @Param        search   query     string  false  "Search text"
// @Param        page     query     int     false  "Page (default 1)"
// @Param        limit    query     int     false  "Page size (default 10, max 100)"
// @Success      200      {object}   domain.Page[domain.InboundEntry]
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /reports/inbound [get]
// @Security     CookieAuth
func (h *ReportHandler) HandleInboundHistory(ctx *gin.Context) {
	q, ok := bindListQuery(ctx)
	if !ok {
		return
	}

	page, err := h.svc.InboundHistory(ctx.Request.Context(), q)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleInboundHistory -> h.svc.InboundHistory", err)
		return
	}

	ctx.JSON(http.StatusOK, page)
}

// HandleOutboundHistory godoc
// @Summary      Outbound stock history
// @Description  One row per sale line, newest sale first.
// @Tags         reports
// @Produce      json
// @Param        search   query     string  false  "Search text"
// @Param        page     query     int     false  "Page (default 1)"
// @Param        limit    query     int     false  "Page size (default 10, max 100)"
// @Success      200      {object}   domain.Page[domain.OutboundEntry]
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /reports/outbound [get]
// @Security     CookieAuth
func (h *ReportHandler) HandleOutboundHistory(ctx *gin.Context) {
	q, ok := bindListQuery(ctx)
	if !ok {
		return
	}

	page, err := h.svc.OutboundHistory(ctx.Request.Context(), q)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleOutboundHistory -> h.svc.OutboundHistory", err)
		return
	}

	ctx.JSON(http.StatusOK, page)
}

// HandleSalesHistory godoc
// @Summary      Sales history
// @Description  Sale headers with their lines and computed total.
// @Tags         reports
// @Produce      json
// @Param        search   query     string  false  "Search text"
// @Param        page     query     int     false  "Page (default 1)"
// @Param        limit    query     int     false  "Page size (default 10, max 100)"
// @Success      200      {object}   domain.Page[domain.SaleSummary]
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /reports/sales [get]
// @Security     CookieAuth
func (h *ReportHandler) HandleSalesHistory(ctx *gin.Context) {
	q, ok := bindListQuery(ctx)
	if !ok {
		return
	}

	page, err := h.svc.SalesHistory(ctx.Request.Context(), q)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSalesHistory -> h.svc.SalesHistory", err)
		return
	}

	ctx.JSON(http.StatusOK, page)
}

// HandleSalesSummary godoc
// @Summary      Sales summary
// @Description  Total revenue, number of sales and the best-selling items.
// @Tags         reports
// @Produce      json
// @Success      200      {object}   domain.SalesOverview
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /reports/summary [get]
// @Security     CookieAuth
func (h *ReportHandler) HandleSalesSummary(ctx *gin.Context) {
	overview, err := h.svc.SalesOverview(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSalesSummary -> h.svc.SalesOverview", err)
		return
	}

	ctx.JSON(http.StatusOK, overview)
}
