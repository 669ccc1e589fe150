package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/simplepos/pos-api/internal/api/handler/v1/request"
	"github.com/simplepos/pos-api/internal/api/handler/v1/response"
	"github.com/simplepos/pos-api/internal/api/middleware"
	"github.com/simplepos/pos-api/internal/config"
	"github.com/simplepos/pos-api/internal/domain"
	"github.com/simplepos/pos-api/internal/pkg/jwthelper"
	"github.com/simplepos/pos-api/internal/service"
)

const defaultSessionTTL = 24 * time.Hour

type AuthService interface {
	Login(ctx context.Context, username, password string) (domain.Employee, error)
}

type SessionRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
}

type AuthHandler struct {
	conf    *config.APIConfig
	svc     AuthService
	revoker SessionRevoker
	now     func() time.Time
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService, revoker SessionRevoker) *AuthHandler {
	return &AuthHandler{
		conf:    conf,
		svc:     svc,
		revoker: revoker,
		now:     time.Now,
	}
}

// HandleLogin godoc
// @Summary      Login an employee
// @Description  Sets the HTTP-only session cookie and returns the signed-in identity.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      429      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	employee, err := h.svc.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))
			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ttl := h.sessionTTL()
	now := h.now()
	token, session, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), jwthelper.Session{
		SubjectID: employee.ID,
		Username:  employee.Username,
		Name:      employee.Name,
		Role:      string(employee.Role),
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.setSessionCookie(ctx, token, int(ttl.Seconds()))

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Identity: domain.Identity{
			SessionID: session.ID,
			SubjectID: session.SubjectID,
			Username:  session.Username,
			Name:      session.Name,
			Role:      employee.Role,
			ExpiresAt: session.ExpiresAt,
		},
	})
}

// HandleLogout godoc
// @Summary      Logout
// @Description  Revokes the current session and clears the cookie.
// @Tags         auth
// @Produce      json
// @Success      200      {object}   response.MessageResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/logout [post]
// @Security     CookieAuth
func (h *AuthHandler) HandleLogout(ctx *gin.Context) {
	who, respErr := getIdentity(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.revoker.Revoke(ctx.Request.Context(), who.SessionID, who.ExpiresAt); err != nil {
		err = fmt.Errorf("v1.HandleLogout -> h.revoker.Revoke -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.setSessionCookie(ctx, "", -1)

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "logged out"})
}

// HandleMe godoc
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Success      200      {object}   domain.Identity
// @Failure      401      {object}   response.Err
// @Router       /auth/me [get]
// @Security     CookieAuth
func (h *AuthHandler) HandleMe(ctx *gin.Context) {
	who, respErr := getIdentity(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, who)
}

func (h *AuthHandler) sessionTTL() time.Duration {
	if h.conf.SessionTTL > 0 {
		return h.conf.SessionTTL
	}

	return defaultSessionTTL
}

func (h *AuthHandler) setSessionCookie(ctx *gin.Context, value string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.SessionCookie, value, maxAge, "/", "", h.conf.CookieSecure, true)
}
