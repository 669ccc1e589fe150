package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/simplepos/pos-api/internal/repository"
)

var (
	ErrValidation        = errors.New("invalid input")
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrEmployeeNotFound     = repository.ErrEmployeeNotFound
	ErrUsernameExists       = repository.ErrUsernameExists
	ErrEmployeeInUse        = repository.ErrEmployeeInUse
	ErrCategoryNotFound     = repository.ErrCategoryNotFound
	ErrCategoryNameExists   = repository.ErrCategoryNameExists
	ErrCategoryInUse        = repository.ErrCategoryInUse
	ErrItemNotFound         = repository.ErrItemNotFound
	ErrItemCodeExists       = repository.ErrItemCodeExists
	ErrItemInUse            = repository.ErrItemInUse
	ErrStockReceiptNotFound = repository.ErrStockReceiptNotFound
)

// ValidationError reports input rejected before any data is touched, or a
// business rule that failed inside a transaction that was then rolled back.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ItemNotFoundError names the item a stock operation referenced.
type ItemNotFoundError struct {
	ItemID string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item %s not found", e.ItemID)
}

func (e *ItemNotFoundError) Is(target error) bool {
	return target == ErrItemNotFound
}

type InsufficientStockError struct {
	ItemID    string
	ItemName  string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: available %s, requested %s",
		e.ItemName, e.Available.String(), e.Requested.String())
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
