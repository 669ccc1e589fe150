package dao

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrUsernameExists       = errors.New("username already exists")
	ErrEmployeeInUse        = errors.New("employee has recorded sales or stock receipts")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryNameExists   = errors.New("category already exists")
	ErrCategoryInUse        = errors.New("category still has items")
	ErrItemNotFound         = errors.New("item not found")
	ErrItemCodeExists       = errors.New("item code already exists")
	ErrItemInUse            = errors.New("item has sales or stock receipts")
	ErrStockReceiptNotFound = errors.New("stock receipt not found")
)

func isPgError(err error, code string) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr, true
	}

	return nil, false
}

func isUniqueViolation(err error) (*pgconn.PgError, bool) {
	return isPgError(err, pgerrcode.UniqueViolation)
}

func isForeignKeyViolation(err error) bool {
	_, ok := isPgError(err, pgerrcode.ForeignKeyViolation)
	return ok
}
