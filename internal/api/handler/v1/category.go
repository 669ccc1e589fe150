package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simplepos/pos-api/internal/api/handler/v1/request"
	"github.com/simplepos/pos-api/internal/api/handler/v1/response"
	"github.com/simplepos/pos-api/internal/domain"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, name string) (domain.Category, error)
	UpdateCategory(ctx context.Context, id, name string) (domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	ListCategories(ctx context.Context, q domain.PageQuery) (domain.Page[domain.Category], error)
}

type CategoryHandler struct {
	svc CategoryService
}

func NewCategoryHandler(svc CategoryService) *CategoryHandler {
	return &CategoryHandler{
		svc: svc,
	}
}

// HandleListCategories godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Param        search   query     string  false  "Search text"
// @Param        page     query     int     false  "Page (default 1)"
// @Param        limit    query     int     false  "Page size (default 10, max 100)"
// @Success      200      {object}   domain.Page[domain.Category]
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /categories [get]
// @Security     CookieAuth
func (h *CategoryHandler) HandleListCategories(ctx *gin.Context) {
	q, ok := bindListQuery(ctx)
	if !ok {
		return
	}

	page, err := h.svc.ListCategories(ctx.Request.Context(), q)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListCategories -> h.svc.ListCategories", err)
		return
	}

	ctx.JSON(http.StatusOK, page)
}

// HandleCreateCategory godoc
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request   body      request.CategoryRequest true "request body"
// @Success      201      {object}   domain.Category
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /categories [post]
// @Security     CookieAuth
func (h *CategoryHandler) HandleCreateCategory(ctx *gin.Context) {
	var req request.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	c, err := h.svc.CreateCategory(ctx.Request.Context(), req.Name)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateCategory -> h.svc.CreateCategory", err)
		return
	}

	ctx.JSON(http.StatusCreated, c)
}

// HandleUpdateCategory godoc
// @Summary      Rename a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        categoryID   path      string  true  "Category ID"
// @Param        request      body      request.CategoryRequest true "request body"
// @Success      200      {object}   domain.Category
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /categories/{categoryID} [put]
// @Security     CookieAuth
func (h *CategoryHandler) HandleUpdateCategory(ctx *gin.Context) {
	var req request.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	c, err := h.svc.UpdateCategory(ctx.Request.Context(), ctx.Param("categoryID"), req.Name)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateCategory -> h.svc.UpdateCategory", err)
		return
	}

	ctx.JSON(http.StatusOK, c)
}

// HandleDeleteCategory godoc
// @Summary      Delete a category
// @Description  Fails with CONFLICT while items still belong to the category.
// @Tags         categories
// @Produce      json
// @Param        categoryID   path      string  true  "Category ID"
// @Success      200      {object}   response.MessageResponse
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /categories/{categoryID} [delete]
// @Security     CookieAuth
func (h *CategoryHandler) HandleDeleteCategory(ctx *gin.Context) {
	if err := h.svc.DeleteCategory(ctx.Request.Context(), ctx.Param("categoryID")); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteCategory -> h.svc.DeleteCategory", err)
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "category deleted"})
}
