package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/simplepos/pos-api/internal/api/handler/v1/request"
	"github.com/simplepos/pos-api/internal/api/handler/v1/response"
	"github.com/simplepos/pos-api/internal/domain"
)

type StockService interface {
	AddInbound(ctx context.Context, who domain.Identity, itemID string, qty decimal.Decimal) (domain.InboundResult, error)
	ReverseInbound(ctx context.Context, receiptID string) (domain.InboundResult, error)
}

type StockHandler struct {
	svc StockService
}

func NewStockHandler(svc StockService) *StockHandler {
	return &StockHandler{
		svc: svc,
	}
}

// HandleAddInbound godoc
// @Summary      Receive stock
// @Description  Adds quantity to an item and records a stock receipt.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        request   body      request.InboundRequest true "request body"
// @Success      200      {object}   response.InboundResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /stock/inbound [post]
// @Security     CookieAuth
func (h *StockHandler) HandleAddInbound(ctx *gin.Context) {
	who, respErr := getIdentity(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.InboundRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.svc.AddInbound(ctx.Request.Context(), who, req.ItemID, *req.QuantityToAdd)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleAddInbound -> h.svc.AddInbound", err)
		return
	}

	ctx.JSON(http.StatusOK, response.InboundResponse{
		ItemID:   result.ItemID,
		Quantity: result.Quantity,
		Receipt:  result.Receipt,
	})
}

// HandleReverseInbound godoc
// @Summary      Reverse a stock receipt
// @Description  Deletes the receipt and subtracts its quantity. Fails when the stock has since been sold below the receipt quantity.
// @Tags         stock
// @Produce      json
// @Param        receiptID   path      string  true  "Stock receipt ID"
// @Success      200      {object}   response.StockLevelResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /stock/inbound/{receiptID} [delete]
// @Security     CookieAuth
func (h *StockHandler) HandleReverseInbound(ctx *gin.Context) {
	result, err := h.svc.ReverseInbound(ctx.Request.Context(), ctx.Param("receiptID"))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleReverseInbound -> h.svc.ReverseInbound", err)
		return
	}

	ctx.JSON(http.StatusOK, response.StockLevelResponse{
		ItemID:   result.ItemID,
		Quantity: result.Quantity,
	})
}
