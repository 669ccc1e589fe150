package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simplepos/pos-api/internal/api/handler/v1/request"
	"github.com/simplepos/pos-api/internal/api/handler/v1/response"
	"github.com/simplepos/pos-api/internal/domain"
)

type ItemService interface {
	CreateItem(ctx context.Context, item domain.Item) (domain.Item, error)
	GetItem(ctx context.Context, id string) (domain.Item, error)
	UpdateItem(ctx context.Context, item domain.Item) (domain.Item, error)
	DeleteItem(ctx context.Context, id string) error
	ListItems(ctx context.Context, q domain.PageQuery) (domain.Page[domain.Item], error)
}

type ItemHandler struct {
	svc ItemService
}

func NewItemHandler(svc ItemService) *ItemHandler {
	return &ItemHandler{
		svc: svc,
	}
}

// HandleListItems godoc
// @Summary      List items
// @Description  Searches name, code and category name, case-insensitively.
// @Tags         items
// @Produce      json
// @Param        search   query     string  false  "Search text"
// @Param        page     query     int     false  "Page (default 1)"
// @Param        limit    query     int     false  "Page size (default 10, max 100)"
// @Success      200      {object}   domain.Page[domain.Item]
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /items [get]
// @Security     CookieAuth
func (h *ItemHandler) HandleListItems(ctx *gin.Context) {
	q, ok := bindListQuery(ctx)
	if !ok {
		return
	}

	page, err := h.svc.ListItems(ctx.Request.Context(), q)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListItems -> h.svc.ListItems", err)
		return
	}

	ctx.JSON(http.StatusOK, page)
}

// HandleGetItem godoc
// @Summary      Get an item
// @Tags         items
// @Produce      json
// @Param        itemID   path      string  true  "Item ID"
// @Success      200      {object}   domain.Item
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /items/{itemID} [get]
// @Security     CookieAuth
func (h *ItemHandler) HandleGetItem(ctx *gin.Context) {
	item, err := h.svc.GetItem(ctx.Request.Context(), ctx.Param("itemID"))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetItem -> h.svc.GetItem", err)
		return
	}

	ctx.JSON(http.StatusOK, item)
}

// HandleCreateItem godoc
// @Summary      Create an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        request   body      request.ItemRequest true "request body"
// @Success      201      {object}   domain.Item
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /items [post]
// @Security     CookieAuth
func (h *ItemHandler) HandleCreateItem(ctx *gin.Context) {
	var req request.ItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	item, err := h.svc.CreateItem(ctx.Request.Context(), req.ToDomain(""))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateItem -> h.svc.CreateItem", err)
		return
	}

	ctx.JSON(http.StatusCreated, item)
}

// HandleUpdateItem godoc
// @Summary      Update an item
// @Description  Replaces every editable field, including the quantity on hand.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        itemID    path      string  true  "Item ID"
// @Param        request   body      request.UpdateItemRequest true "request body"
// @Success      200      {object}   domain.Item
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /items/{itemID} [put]
// @Security     CookieAuth
func (h *ItemHandler) HandleUpdateItem(ctx *gin.Context) {
	var req request.UpdateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	item, err := h.svc.UpdateItem(ctx.Request.Context(), req.ToDomain(ctx.Param("itemID")))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateItem -> h.svc.UpdateItem", err)
		return
	}

	ctx.JSON(http.StatusOK, item)
}

// HandleDeleteItem godoc
// @Summary      Delete an item
// @Description  Fails with CONFLICT while sales or stock receipts reference the item.
// @Tags         items
// @Produce      json
// @Param        itemID   path      string  true  "Item ID"
// @Success      200      {object}   response.MessageResponse
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /items/{itemID} [delete]
// @Security     CookieAuth
func (h *ItemHandler) HandleDeleteItem(ctx *gin.Context) {
	if err := h.svc.DeleteItem(ctx.Request.Context(), ctx.Param("itemID")); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteItem -> h.svc.DeleteItem", err)
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "item deleted"})
}
