package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"

	"github.com/simplepos/pos-api/internal/domain"
)

type CategoryRequest struct {
	Name string `json:"name" example:"Minuman"`
}

func (req *CategoryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
	)
}

type ItemRequest struct {
	Code       string           `json:"code,omitempty" example:"8991002101234"`
	Name       string           `json:"name" example:"Kopi Susu"`
	CategoryID string           `json:"category_id" example:"KAT-4HZ2Q9"`
	UnitPrice  *decimal.Decimal `json:"unit_price" swaggertype:"number" example:"18000"`
	Unit       string           `json:"unit" example:"cup"`
	Quantity   *decimal.Decimal `json:"quantity,omitempty" swaggertype:"number" example:"0"`
}

func (req *ItemRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Code, validation.Length(0, 50)),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 150)),
		validation.Field(&req.CategoryID, validation.Required),
		validation.Field(&req.UnitPrice, validation.NotNil, validation.By(positive), validation.By(moneyDigits)),
		validation.Field(&req.Unit, validation.Required, validation.Length(1, 30)),
		validation.Field(&req.Quantity, validation.By(nonNegative), validation.By(quantityDigits)),
	)
}

func (req *ItemRequest) ToDomain(id string) domain.Item {
	item := domain.Item{
		ID:         id,
		Code:       req.Code,
		Name:       req.Name,
		CategoryID: req.CategoryID,
		UnitPrice:  *req.UnitPrice,
		Unit:       req.Unit,
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}

	return item
}

// UpdateItemRequest replaces every editable field, so the quantity on hand
// must be given explicitly.
type UpdateItemRequest struct {
	ItemRequest
}

func (req *UpdateItemRequest) Validate() error {
	if err := req.ItemRequest.Validate(); err != nil {
		return err
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Quantity, validation.NotNil),
	)
}
