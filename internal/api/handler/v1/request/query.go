package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/simplepos/pos-api/internal/domain"
)

// ListQuery is bound from the query string of every listing endpoint.
type ListQuery struct {
	Search string `form:"search"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (q *ListQuery) Validate() error {
	return validation.ValidateStruct(
		q,
		validation.Field(&q.Search, validation.Length(0, 100)),
		validation.Field(&q.Page, validation.Min(0)),
		validation.Field(&q.Limit, validation.Min(0)),
	)
}

// ToDomain applies defaults; a limit above the maximum is capped.
func (q *ListQuery) ToDomain() domain.PageQuery {
	return domain.PageQuery{
		Search: q.Search,
		Page:   q.Page,
		Limit:  q.Limit,
	}.Normalize()
}
