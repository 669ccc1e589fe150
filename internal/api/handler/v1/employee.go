package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simplepos/pos-api/internal/api/handler/v1/request"
	"github.com/simplepos/pos-api/internal/api/handler/v1/response"
	"github.com/simplepos/pos-api/internal/domain"
	"github.com/simplepos/pos-api/internal/service"
)

type EmployeeService interface {
	CreateEmployee(ctx context.Context, e domain.Employee) (domain.Employee, error)
	UpdateEmployee(ctx context.Context, u service.EmployeeUpdate) (domain.Employee, error)
	DeleteEmployee(ctx context.Context, who domain.Identity, id string) error
	GetEmployee(ctx context.Context, id string) (domain.Employee, error)
	ListEmployees(ctx context.Context, q domain.PageQuery) (domain.Page[domain.Employee], error)
}

type EmployeeHandler struct {
	svc EmployeeService
}

func NewEmployeeHandler(svc EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		svc: svc,
	}
}

// HandleListEmployees godoc
// @Summary      List employees
// @Tags         employees
// @Produce      json
// @Param        search   query     string  false  "Search text"
// @Param        page     query     int     false  "Page (default 1)"
// @Param        limit    query     int     false  "Page size (default 10, max 100)"
// @Success      200      {object}   domain.Page[domain.Employee]
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /employees [get]
// @Security     CookieAuth
func (h *EmployeeHandler) HandleListEmployees(ctx *gin.Context) {
	q, ok := bindListQuery(ctx)
	if !ok {
		return
	}

	page, err := h.svc.ListEmployees(ctx.Request.Context(), q)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListEmployees -> h.svc.ListEmployees", err)
		return
	}

	ctx.JSON(http.StatusOK, page)
}

// HandleGetEmployee godoc
// @Summary      Get an employee
// @Tags         employees
// @Produce      json
// @Param        employeeID   path      string  true  "Employee ID"
// @Success      200      {object}   domain.Employee
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /employees/{employeeID} [get]
// @Security     CookieAuth
func (h *EmployeeHandler) HandleGetEmployee(ctx *gin.Context) {
	e, err := h.svc.GetEmployee(ctx.Request.Context(), ctx.Param("employeeID"))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetEmployee -> h.svc.GetEmployee", err)
		return
	}

	ctx.JSON(http.StatusOK, e)
}

// HandleCreateEmployee godoc
// @Summary      Create an employee account
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateEmployeeRequest true "request body"
// @Success      201      {object}   domain.Employee
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /employees [post]
// @Security     CookieAuth
func (h *EmployeeHandler) HandleCreateEmployee(ctx *gin.Context) {
	var req request.CreateEmployeeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	e, err := h.svc.CreateEmployee(ctx.Request.Context(), domain.Employee{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateEmployee -> h.svc.CreateEmployee", err)
		return
	}

	ctx.JSON(http.StatusCreated, e)
}

// HandleUpdateEmployee godoc
// @Summary      Update an employee account
// @Description  The password is only replaced when change_password is true.
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        employeeID   path      string  true  "Employee ID"
// @Param        request      body      request.UpdateEmployeeRequest true "request body"
// @Success      200      {object}   domain.Employee
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /employees/{employeeID} [put]
// @Security     CookieAuth
func (h *EmployeeHandler) HandleUpdateEmployee(ctx *gin.Context) {
	var req request.UpdateEmployeeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	e, err := h.svc.UpdateEmployee(ctx.Request.Context(), service.EmployeeUpdate{
		ID:             ctx.Param("employeeID"),
		Name:           req.Name,
		Username:       req.Username,
		Role:           req.Role,
		ChangePassword: req.ChangePassword,
		Password:       req.Password,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateEmployee -> h.svc.UpdateEmployee", err)
		return
	}

	ctx.JSON(http.StatusOK, e)
}

// HandleDeleteEmployee godoc
// @Summary      Delete an employee account
// @Description  An employee cannot delete their own account.
// @Tags         employees
// @Produce      json
// @Param        employeeID   path      string  true  "Employee ID"
// @Success      200      {object}   response.MessageResponse
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /employees/{employeeID} [delete]
// @Security     CookieAuth
func (h *EmployeeHandler) HandleDeleteEmployee(ctx *gin.Context) {
	who, respErr := getIdentity(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteEmployee(ctx.Request.Context(), who, ctx.Param("employeeID")); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteEmployee -> h.svc.DeleteEmployee", err)
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "employee deleted"})
}
