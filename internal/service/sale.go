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

type LedgerRepository interface {
	InTx(ctx context.Context, fn func(tx repository.StockTx) error) error
}

type SaleIDs interface {
	SaleID() string
	SaleLineID() string
}

type SaleService struct {
	ledger   LedgerRepository
	ids      SaleIDs
	notifier StockNotifier
	now      func() time.Time
}

func NewSaleService(ledger LedgerRepository, ids SaleIDs, notifier StockNotifier) *SaleService {
	return &SaleService{
		ledger:   ledger,
		ids:      ids,
		notifier: notifierOrNoop(notifier),
		now:      time.Now,
	}
}

// Checkout commits a sale atomically. Each cart line locks its item row,
// checks stock, records the line at the item's current price and decrements
// stock. Any failure rolls back the header, every line and every decrement.
func (s *SaleService) Checkout(ctx context.Context, who domain.Identity, c domain.Checkout) (domain.Receipt, error) {
	if err := validateCheckout(c); err != nil {
		return domain.Receipt{}, err
	}

	var receipt domain.Receipt
	levels := make(map[string]domain.StockLevel, len(c.Lines))

	err := s.ledger.InTx(ctx, func(tx repository.StockTx) error {
		sale, err := tx.InsertSale(ctx, domain.Sale{
			ID:           s.ids.SaleID(),
			Note:         strings.TrimSpace(c.Note),
			CashTendered: c.CashTendered,
			EmployeeID:   who.SubjectID,
			CreatedAt:    s.now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("tx.InsertSale -> %w", err)
		}

		cashierName, err := tx.EmployeeName(ctx, sale.EmployeeID)
		if err != nil {
			return fmt.Errorf("tx.EmployeeName -> %w", err)
		}

		total := decimal.Zero
		lines := make([]domain.ReceiptLine, 0, len(c.Lines))

		for i, cl := range c.Lines {
			item, err := tx.LockItem(ctx, cl.ItemID)
			if err != nil {
				if errors.Is(err, repository.ErrItemNotFound) {
					return &ItemNotFoundError{ItemID: cl.ItemID}
				}
				return fmt.Errorf("tx.LockItem -> %w", err)
			}

			if item.Quantity.LessThan(cl.Quantity) {
				return &InsufficientStockError{
					ItemID:    item.ID,
					ItemName:  item.Name,
					Available: item.Quantity,
					Requested: cl.Quantity,
				}
			}

			line, err := tx.InsertSaleLine(ctx, domain.SaleLine{
				ID:        s.ids.SaleLineID(),
				SaleID:    sale.ID,
				Position:  i + 1,
				ItemID:    item.ID,
				Quantity:  cl.Quantity,
				UnitPrice: item.UnitPrice,
			})
			if err != nil {
				return fmt.Errorf("tx.InsertSaleLine -> %w", err)
			}

			if err = tx.AdjustItemQuantity(ctx, item.ID, cl.Quantity.Neg()); err != nil {
				return fmt.Errorf("tx.AdjustItemQuantity -> %w", err)
			}

			subtotal := line.Subtotal()
			total = total.Add(subtotal)
			lines = append(lines, domain.ReceiptLine{
				LineID:    line.ID,
				ItemID:    item.ID,
				ItemName:  item.Name,
				Unit:      item.Unit,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				Subtotal:  subtotal,
			})
			levels[item.ID] = domain.StockLevel{
				ItemID:   item.ID,
				ItemName: item.Name,
				Quantity: item.Quantity.Sub(cl.Quantity),
			}
		}

		if sale.CashTendered.LessThan(total) {
			return invalid("cash tendered %s is less than the total %s", sale.CashTendered.String(), total.String())
		}

		receipt = domain.Receipt{
			SaleID:       sale.ID,
			Note:         sale.Note,
			EmployeeName: cashierName,
			CreatedAt:    sale.CreatedAt,
			CashTendered: sale.CashTendered,
			Total:        total,
			Change:       sale.CashTendered.Sub(total),
			Lines:        lines,
		}

		return nil
	})
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("s.ledger.InTx -> %w", err)
	}

	zap.L().Info("sale committed",
		zap.String("sale_id", receipt.SaleID),
		zap.String("employee_id", who.SubjectID),
		zap.Int("lines", len(receipt.Lines)),
		zap.String("total", receipt.Total.String()),
	)

	s.notifier.Publish(stockLevels(levels))

	return receipt, nil
}

func validateCheckout(c domain.Checkout) error {
	if len(c.Lines) == 0 {
		return invalid("cart is empty")
	}
	for i, l := range c.Lines {
		if strings.TrimSpace(l.ItemID) == "" {
			return invalid("line %d: item_id is required", i+1)
		}
		if !l.Quantity.IsPositive() {
			return invalid("line %d: quantity must be greater than zero", i+1)
		}
		if !domain.FitsQuantity(l.Quantity) {
			return invalid("line %d: quantity must have at most %d decimal places and be less than 100000000000", i+1, domain.QuantityScale)
		}
	}
	if c.CashTendered.IsNegative() {
		return invalid("cash_tendered must not be negative")
	}
	if !domain.FitsMoney(c.CashTendered) {
		return invalid("cash_tendered must have at most %d decimal places and be less than 1000000000000", domain.MoneyScale)
	}

	return nil
}

func stockLevels(m map[string]domain.StockLevel) []domain.StockLevel {
	levels := make([]domain.StockLevel, 0, len(m))
	for _, l := range m {
		levels = append(levels, l)
	}

	return levels
}
