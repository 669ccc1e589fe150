package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

type InboundRequest struct {
	ItemID        string           `json:"item_id" example:"ITM-8K2M4Q7Z1A"`
	QuantityToAdd *decimal.Decimal `json:"quantity_to_add" swaggertype:"number" example:"24"`
}

func (req *InboundRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ItemID, validation.Required),
		validation.Field(&req.QuantityToAdd, validation.NotNil, validation.By(positive), validation.By(quantityDigits)),
	)
}
