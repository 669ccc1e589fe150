package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/simplepos/pos-api/internal/domain"
	"github.com/simplepos/pos-api/internal/repository/dao"
)

var ErrStockReceiptNotFound = dao.ErrStockReceiptNotFound

// StockTx is the set of stock-ledger operations available inside one
// database transaction. Items and receipts returned by the Lock methods stay
// locked until the transaction ends.
type StockTx interface {
	LockItem(ctx context.Context, itemID string) (domain.Item, error)
	AdjustItemQuantity(ctx context.Context, itemID string, delta decimal.Decimal) error
	InsertSale(ctx context.Context, sale domain.Sale) (domain.Sale, error)
	EmployeeName(ctx context.Context, employeeID string) (string, error)
	InsertSaleLine(ctx context.Context, line domain.SaleLine) (domain.SaleLine, error)
	InsertStockReceipt(ctx context.Context, r domain.StockReceipt) (domain.StockReceipt, error)
	LockStockReceipt(ctx context.Context, id string) (domain.StockReceipt, error)
	DeleteStockReceipt(ctx context.Context, id string) error
}

type LedgerDAO interface {
	Transaction(ctx context.Context, fn func(tx *dao.LedgerDAO) error) error
}

type LedgerRepository struct {
	dao LedgerDAO
}

func NewLedgerRepository(dao LedgerDAO) *LedgerRepository {
	return &LedgerRepository{
		dao: dao,
	}
}

// InTx runs fn in a database transaction; any error from fn rolls back
// every write made through tx.
func (r *LedgerRepository) InTx(ctx context.Context, fn func(tx StockTx) error) error {
	return r.dao.Transaction(ctx, func(tx *dao.LedgerDAO) error {
		return fn(&stockTx{dao: tx})
	})
}

type stockTx struct {
	dao *dao.LedgerDAO
}

func (t *stockTx) LockItem(ctx context.Context, itemID string) (domain.Item, error) {
	item, err := t.dao.LockItem(ctx, itemID)
	if err != nil {
		return domain.Item{}, fmt.Errorf("t.dao.LockItem -> %w", err)
	}

	return itemDAOToDomain(item), nil
}

func (t *stockTx) AdjustItemQuantity(ctx context.Context, itemID string, delta decimal.Decimal) error {
	if err := t.dao.AdjustItemQuantity(ctx, itemID, delta); err != nil {
		return fmt.Errorf("t.dao.AdjustItemQuantity -> %w", err)
	}

	return nil
}

func (t *stockTx) InsertSale(ctx context.Context, sale domain.Sale) (domain.Sale, error) {
	created, err := t.dao.InsertSale(ctx, dao.Sale{
		ID:           sale.ID,
		Note:         sale.Note,
		CashTendered: sale.CashTendered,
		EmployeeID:   sale.EmployeeID,
		CreatedAt:    sale.CreatedAt,
	})
	if err != nil {
		return domain.Sale{}, fmt.Errorf("t.dao.InsertSale -> %w", err)
	}

	return domain.Sale{
		ID:           created.ID,
		Note:         created.Note,
		CashTendered: created.CashTendered,
		EmployeeID:   created.EmployeeID,
		CreatedAt:    created.CreatedAt,
	}, nil
}

func (t *stockTx) EmployeeName(ctx context.Context, employeeID string) (string, error) {
	name, err := t.dao.EmployeeName(ctx, employeeID)
	if err != nil {
		return "", fmt.Errorf("t.dao.EmployeeName -> %w", err)
	}

	return name, nil
}

func (t *stockTx) InsertSaleLine(ctx context.Context, line domain.SaleLine) (domain.SaleLine, error) {
	created, err := t.dao.InsertSaleLine(ctx, dao.SaleLine{
		ID:        line.ID,
		SaleID:    line.SaleID,
		Position:  line.Position,
		ItemID:    line.ItemID,
		Quantity:  line.Quantity,
		UnitPrice: line.UnitPrice,
	})
	if err != nil {
		return domain.SaleLine{}, fmt.Errorf("t.dao.InsertSaleLine -> %w", err)
	}

	return domain.SaleLine{
		ID:        created.ID,
		SaleID:    created.SaleID,
		Position:  created.Position,
		ItemID:    created.ItemID,
		Quantity:  created.Quantity,
		UnitPrice: created.UnitPrice,
	}, nil
}

func (t *stockTx) InsertStockReceipt(ctx context.Context, r domain.StockReceipt) (domain.StockReceipt, error) {
	created, err := t.dao.InsertStockReceipt(ctx, dao.StockReceipt{
		ID:         r.ID,
		ItemID:     r.ItemID,
		EmployeeID: r.EmployeeID,
		Quantity:   r.Quantity,
		CreatedAt:  r.CreatedAt,
	})
	if err != nil {
		return domain.StockReceipt{}, fmt.Errorf("t.dao.InsertStockReceipt -> %w", err)
	}

	return receiptDAOToDomain(created), nil
}

func (t *stockTx) LockStockReceipt(ctx context.Context, id string) (domain.StockReceipt, error) {
	found, err := t.dao.LockStockReceipt(ctx, id)
	if err != nil {
		return domain.StockReceipt{}, fmt.Errorf("t.dao.LockStockReceipt -> %w", err)
	}

	return receiptDAOToDomain(found), nil
}

func (t *stockTx) DeleteStockReceipt(ctx context.Context, id string) error {
	if err := t.dao.DeleteStockReceipt(ctx, id); err != nil {
		return fmt.Errorf("t.dao.DeleteStockReceipt -> %w", err)
	}

	return nil
}

func receiptDAOToDomain(r dao.StockReceipt) domain.StockReceipt {
	return domain.StockReceipt{
		ID:         r.ID,
		ItemID:     r.ItemID,
		EmployeeID: r.EmployeeID,
		Quantity:   r.Quantity,
		CreatedAt:  r.CreatedAt,
	}
}
