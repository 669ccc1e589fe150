package response

import (
	"github.com/shopspring/decimal"

	"github.com/simplepos/pos-api/internal/domain"
)

type LoginResponse struct {
	Identity domain.Identity `json:"identity"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type StockLevelResponse struct {
	ItemID   string          `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity" swaggertype:"string" example:"25"`
}

type InboundResponse struct {
	ItemID   string               `json:"item_id"`
	Quantity decimal.Decimal      `json:"quantity" swaggertype:"string" example:"25"`
	Receipt  *domain.StockReceipt `json:"receipt,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
