package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderErr(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        *Err
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "bad request keeps message",
			err:        ErrBadRequest(errors.New("cart is empty")),
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeValidation,
			wantMsg:    "cart is empty",
		},
		{
			name:       "not found",
			err:        ErrNotFound("item", "id", "ITM-1"),
			wantStatus: http.StatusNotFound,
			wantCode:   CodeNotFound,
			wantMsg:    "item with id ITM-1 not found",
		},
		{
			name:       "internal hides cause",
			err:        ErrInternalServerError(errors.New("pq: connection refused")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   CodeInternal,
			wantMsg:    "internal server error",
		},
		{
			name:       "wrong credentials",
			err:        ErrWrongCredentials(errors.New("wrong password")),
			wantStatus: http.StatusUnauthorized,
			wantCode:   CodeUnauthenticated,
			wantMsg:    "invalid username or password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			RenderErr(ctx, tt.err)

			assert.True(t, ctx.IsAborted())
			assert.Equal(t, tt.wantStatus, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["code"])
			assert.Equal(t, tt.wantMsg, body["message"])
		})
	}
}
