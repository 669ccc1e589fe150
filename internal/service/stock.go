package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/simplepos/pos-api/internal/domain"
	"github.com/simplepos/pos-api/internal/repository"
)

type StockReceiptIDs interface {
	StockReceiptID() string
}

// StockService records inbound stock and reverses it. Both paths lock the
// item row the same way Checkout does.
type StockService struct {
	ledger   LedgerRepository
	ids      StockReceiptIDs
	notifier StockNotifier
	now      func() time.Time
}

func NewStockService(ledger LedgerRepository, ids StockReceiptIDs, notifier StockNotifier) *StockService {
	return &StockService{
		ledger:   ledger,
		ids:      ids,
		notifier: notifierOrNoop(notifier),
		now:      time.Now,
	}
}

func (s *StockService) AddInbound(ctx context.Context, who domain.Identity, itemID string, qty decimal.Decimal) (domain.InboundResult, error) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return domain.InboundResult{}, invalid("item_id is required")
	}
	if !qty.IsPositive() {
		return domain.InboundResult{}, invalid("quantity_to_add must be greater than zero")
	}
	if !domain.FitsQuantity(qty) {
		return domain.InboundResult{}, invalid("quantity_to_add must have at most %d decimal places and be less than 100000000000", domain.QuantityScale)
	}

	var (
		result domain.InboundResult
		level  domain.StockLevel
	)

	err := s.ledger.InTx(ctx, func(tx repository.StockTx) error {
		item, err := tx.LockItem(ctx, itemID)
		if err != nil {
			if errors.Is(err, repository.ErrItemNotFound) {
				return &ItemNotFoundError{ItemID: itemID}
			}
			return fmt.Errorf("tx.LockItem -> %w", err)
		}

		newQty := item.Quantity.Add(qty)
		if !domain.FitsQuantity(newQty) {
			return invalid("stock of %q would exceed the largest storable quantity", item.Name)
		}

		if err = tx.AdjustItemQuantity(ctx, item.ID, qty); err != nil {
			return fmt.Errorf("tx.AdjustItemQuantity -> %w", err)
		}

		receipt, err := tx.InsertStockReceipt(ctx, domain.StockReceipt{
			ID:         s.ids.StockReceiptID(),
			ItemID:     item.ID,
			EmployeeID: who.SubjectID,
			Quantity:   qty,
			CreatedAt:  s.now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("tx.InsertStockReceipt -> %w", err)
		}

		result = domain.InboundResult{ItemID: item.ID, Quantity: newQty, Receipt: &receipt}
		level = domain.StockLevel{ItemID: item.ID, ItemName: item.Name, Quantity: newQty}

		return nil
	})
	if err != nil {
		return domain.InboundResult{}, fmt.Errorf("s.ledger.InTx -> %w", err)
	}

	zap.L().Info("inbound stock recorded",
		zap.String("receipt_id", result.Receipt.ID),
		zap.String("item_id", result.ItemID),
		zap.String("quantity", qty.String()),
	)
	s.notifier.Publish([]domain.StockLevel{level})

	return result, nil
}

// ReverseInbound deletes a receipt and takes its quantity back out of
// stock. It fails with an InsufficientStockError instead of driving the item
// negative when sales have already consumed the received units.
func (s *StockService) ReverseInbound(ctx context.Context, receiptID string) (domain.InboundResult, error) {
	var (
		result domain.InboundResult
		level  domain.StockLevel
	)

	err := s.ledger.InTx(ctx, func(tx repository.StockTx) error {
		receipt, err := tx.LockStockReceipt(ctx, receiptID)
		if err != nil {
			return fmt.Errorf("tx.LockStockReceipt -> %w", err)
		}

		item, err := tx.LockItem(ctx, receipt.ItemID)
		if err != nil {
			if errors.Is(err, repository.ErrItemNotFound) {
				return &ItemNotFoundError{ItemID: receipt.ItemID}
			}
			return fmt.Errorf("tx.LockItem -> %w", err)
		}

		if item.Quantity.LessThan(receipt.Quantity) {
			return &InsufficientStockError{
				ItemID:    item.ID,
				ItemName:  item.Name,
				Available: item.Quantity,
				Requested: receipt.Quantity,
			}
		}

		if err = tx.AdjustItemQuantity(ctx, item.ID, receipt.Quantity.Neg()); err != nil {
			return fmt.Errorf("tx.AdjustItemQuantity -> %w", err)
		}

		if err = tx.DeleteStockReceipt(ctx, receipt.ID); err != nil {
			return fmt.Errorf("tx.DeleteStockReceipt -> %w", err)
		}

		newQty := item.Quantity.Sub(receipt.Quantity)
		result = domain.InboundResult{ItemID: item.ID, Quantity: newQty}
		level = domain.StockLevel{ItemID: item.ID, ItemName: item.Name, Quantity: newQty}

		return nil
	})
	if err != nil {
		return domain.InboundResult{}, fmt.Errorf("s.ledger.InTx -> %w", err)
	}

	zap.L().Info("inbound stock reversed",
		zap.String("receipt_id", receiptID),
		zap.String("item_id", result.ItemID),
	)
	s.notifier.Publish([]domain.StockLevel{level})

	return result, nil
}
