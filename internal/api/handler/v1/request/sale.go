package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"

	"github.com/simplepos/pos-api/internal/domain"
)

const maxCartLines = 200

var (
	errNotPositive       = errors.New("must be greater than zero")
	errNegative          = errors.New("must not be negative")
	errQuantityPrecision = errors.New("must have at most 3 decimal places and be less than 100000000000")
	errMoneyPrecision    = errors.New("must have at most 2 decimal places and be less than 1000000000000")
)

type CartLineRequest struct {
	ItemID   string           `json:"item_id" example:"ITM-8K2M4Q7Z1A"`
	Quantity *decimal.Decimal `json:"quantity" swaggertype:"number" example:"2"`
}

func (req CartLineRequest) Validate() error {
	return validation.ValidateStruct(
		&req,
		validation.Field(&req.ItemID, validation.Required),
		validation.Field(&req.Quantity, validation.NotNil, validation.By(positive), validation.By(quantityDigits)),
	)
}

type CheckoutRequest struct {
	Items        []CartLineRequest `json:"items"`
	Note         string            `json:"note,omitempty" example:"meja 4"`
	CashTendered *decimal.Decimal  `json:"cash_tendered" swaggertype:"number" example:"50000"`
}

func (req *CheckoutRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Items, validation.Required, validation.Length(1, maxCartLines)),
		validation.Field(&req.Note, validation.Length(0, 255)),
		validation.Field(&req.CashTendered, validation.NotNil, validation.By(nonNegative), validation.By(moneyDigits)),
	)
}

func (req *CheckoutRequest) ToDomain() domain.Checkout {
	lines := make([]domain.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, domain.CartLine{
			ItemID:   item.ItemID,
			Quantity: *item.Quantity,
		})
	}

	return domain.Checkout{
		Lines:        lines,
		Note:         req.Note,
		CashTendered: *req.CashTendered,
	}
}

func positive(value interface{}) error {
	d, ok := value.(*decimal.Decimal)
	if !ok || d == nil {
		return nil
	}
	if !d.IsPositive() {
		return errNotPositive
	}

	return nil
}

func nonNegative(value interface{}) error {
	d, ok := value.(*decimal.Decimal)
	if !ok || d == nil {
		return nil
	}
	if d.IsNegative() {
		return errNegative
	}

	return nil
}

func quantityDigits(value interface{}) error {
	d, ok := value.(*decimal.Decimal)
	if !ok || d == nil {
		return nil
	}
	if !domain.FitsQuantity(*d) {
		return errQuantityPrecision
	}

	return nil
}

func moneyDigits(value interface{}) error {
	d, ok := value.(*decimal.Decimal)
	if !ok || d == nil {
		return nil
	}
	if !domain.FitsMoney(*d) {
		return errMoneyPrecision
	}

	return nil
}
