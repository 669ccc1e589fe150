package v1

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/simplepos/pos-api/internal/api/handler/v1/request"
	"github.com/simplepos/pos-api/internal/api/handler/v1/response"
	"github.com/simplepos/pos-api/internal/api/middleware"
	"github.com/simplepos/pos-api/internal/domain"
	"github.com/simplepos/pos-api/internal/service"
)

var (
	notFoundErrs = []error{
		service.ErrEmployeeNotFound,
		service.ErrCategoryNotFound,
		service.ErrItemNotFound,
		service.ErrStockReceiptNotFound,
	}
	conflictErrs = []error{
		service.ErrUsernameExists,
		service.ErrEmployeeInUse,
		service.ErrCategoryNameExists,
		service.ErrCategoryInUse,
		service.ErrItemCodeExists,
		service.ErrItemInUse,
		service.ErrSelfDelete,
	}
)

// renderServiceErr maps a service error to the response taxonomy. Anything
// unrecognised is an internal error and is logged with op as context.
func renderServiceErr(ctx *gin.Context, op string, err error) {
	var (
		validationErr *service.ValidationError
		stockErr      *service.InsufficientStockError
		itemErr       *service.ItemNotFoundError
	)

	switch {
	case errors.As(err, &validationErr):
		response.RenderErr(ctx, response.ErrBadRequest(validationErr))
		return
	case errors.As(err, &stockErr):
		response.RenderErr(ctx, response.ErrInsufficientStock(stockErr))
		return
	case errors.As(err, &itemErr):
		response.RenderErr(ctx, response.ErrNotFoundMsg(itemErr))
		return
	}

	for _, target := range notFoundErrs {
		if errors.Is(err, target) {
			response.RenderErr(ctx, response.ErrNotFoundMsg(target))
			return
		}
	}
	for _, target := range conflictErrs {
		if errors.Is(err, target) {
			response.RenderErr(ctx, response.ErrConflict(target))
			return
		}
	}

	response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
}

func getIdentity(ctx *gin.Context) (domain.Identity, *response.Err) {
	who, ok := middleware.IdentityFrom(ctx)
	if !ok {
		return domain.Identity{}, response.ErrUnauthenticated(errors.New("no identity in context"))
	}

	return who, nil
}

func bindListQuery(ctx *gin.Context) (domain.PageQuery, bool) {
	var q request.ListQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return domain.PageQuery{}, false
	}

	if err := q.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return domain.PageQuery{}, false
	}

	return q.ToDomain(), true
}
