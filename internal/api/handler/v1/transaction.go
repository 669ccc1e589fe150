package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simplepos/pos-api/internal/api/handler/v1/request"
	"github.com/simplepos/pos-api/internal/api/handler/v1/response"
	"github.com/simplepos/pos-api/internal/domain"
)

type SaleService interface {
	Checkout(ctx context.Context, who domain.Identity, c domain.Checkout) (domain.Receipt, error)
}

type SaleHandler struct {
	svc SaleService
}

func NewSaleHandler(svc SaleService) *SaleHandler {
	return &SaleHandler{
		svc: svc,
	}
}

// HandleCheckout godoc
// @Summary      Record a sale
// @Description  Locks every item in the cart, checks stock, records each line at the stored price and decrements stock. Nothing is written when any line fails.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        request   body      request.CheckoutRequest true "request body"
// @Success      201      {object}   domain.Receipt
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /transactions [post]
// @Security     CookieAuth
func (h *SaleHandler) HandleCheckout(ctx *gin.Context) {
	who, respErr := getIdentity(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	receipt, err := h.svc.Checkout(ctx.Request.Context(), who, req.ToDomain())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCheckout -> h.svc.Checkout", err)
		return
	}

	ctx.JSON(http.StatusCreated, receipt)
}
