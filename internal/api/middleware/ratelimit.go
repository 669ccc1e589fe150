package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/simplepos/pos-api/internal/api/handler/v1/response"
)

// RateLimit throttles requests per client IP. formatted uses the limiter
// notation, e.g. "5-M" for five requests a minute.
func RateLimit(formatted string) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("limiter.NewRateFromFormatted -> %w", err)
	}

	instance := limiter.New(memory.NewStore(), rate)

	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(ctx *gin.Context) {
			response.RenderErr(ctx, response.ErrTooManyRequests())
		}),
		mgin.WithErrorHandler(func(ctx *gin.Context, err error) {
			err = fmt.Errorf("RateLimit -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}),
	), nil
}
