package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StockReceipt struct {
	ID string `gorm:"primaryKey;size:32"`

	ItemID string `gorm:"not null;index;size:16"`
	Item   Item   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`

	EmployeeID string   `gorm:"not null;index;size:16"`
	Employee   Employee `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`

	Quantity decimal.Decimal `gorm:"type:numeric(14,3);not null"`

	CreatedAt time.Time `gorm:"not null;index"`
}

type Sale struct {
	ID string `gorm:"primaryKey;size:32"`

	Note         string          `gorm:"not null;default:''"`
	CashTendered decimal.Decimal `gorm:"type:numeric(14,2);not null"`

	EmployeeID string   `gorm:"not null;index;size:16"`
	Employee   Employee `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`

	Lines []SaleLine `gorm:"constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time `gorm:"not null;index"`
}

type SaleLine struct {
	ID string `gorm:"primaryKey;size:16"`

	SaleID string `gorm:"not null;index;size:32"`

	// Position is the 1-based place of the line in the submitted cart.
	Position int `gorm:"not null;default:0"`

	ItemID string `gorm:"not null;index;size:16"`
	Item   Item   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`

	Quantity  decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

// LedgerDAO holds every statement that reads or writes an item's quantity
// on hand. Callers use Transaction to get a LedgerDAO bound to one
// database transaction; the Lock* methods are only meaningful there.
type LedgerDAO struct {
	db *gorm.DB
}

func NewLedgerDAO(db *gorm.DB) *LedgerDAO {
	return &LedgerDAO{
		db: db,
	}
}

// Transaction runs fn inside a database transaction. The transaction is
// rolled back when fn returns an error or panics.
func (d *LedgerDAO) Transaction(ctx context.Context, fn func(tx *LedgerDAO) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&LedgerDAO{db: tx})
	})
}

// LockItem reads the item with SELECT ... FOR UPDATE.
func (d *LedgerDAO) LockItem(ctx context.Context, id string) (Item, error) {
	var item Item

	result := d.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&item, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Item{}, ErrItemNotFound
		}

		return Item{}, result.Error
	}

	return item, nil
}

func (d *LedgerDAO) AdjustItemQuantity(ctx context.Context, id string, delta decimal.Decimal) error {
	result := d.db.WithContext(ctx).Model(&Item{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}

// EmployeeName reads the current name of the employee recording a sale.
func (d *LedgerDAO) EmployeeName(ctx context.Context, id string) (string, error) {
	var e Employee

	result := d.db.WithContext(ctx).Select("id", "name").First(&e, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", ErrEmployeeNotFound
		}

		return "", result.Error
	}

	return e.Name, nil
}

func (d *LedgerDAO) InsertSale(ctx context.Context, sale Sale) (Sale, error) {
	if err := d.db.WithContext(ctx).Omit(clause.Associations).Create(&sale).Error; err != nil {
		if isForeignKeyViolation(err) {
			return Sale{}, ErrEmployeeNotFound
		}

		return Sale{}, err
	}

	return sale, nil
}

func (d *LedgerDAO) InsertSaleLine(ctx context.Context, line SaleLine) (SaleLine, error) {
	if err := d.db.WithContext(ctx).Omit(clause.Associations).Create(&line).Error; err != nil {
		return SaleLine{}, err
	}

	return line, nil
}

func (d *LedgerDAO) InsertStockReceipt(ctx context.Context, r StockReceipt) (StockReceipt, error) {
	if err := d.db.WithContext(ctx).Omit(clause.Associations).Create(&r).Error; err != nil {
		if isForeignKeyViolation(err) {
			return StockReceipt{}, ErrEmployeeNotFound
		}

		return StockReceipt{}, err
	}

	return r, nil
}

func (d *LedgerDAO) LockStockReceipt(ctx context.Context, id string) (StockReceipt, error) {
	var r StockReceipt

	result := d.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&r, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return StockReceipt{}, ErrStockReceiptNotFound
		}

		return StockReceipt{}, result.Error
	}

	return r, nil
}

func (d *LedgerDAO) DeleteStockReceipt(ctx context.Context, id string) error {
	result := d.db.WithContext(ctx).Delete(&StockReceipt{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStockReceiptNotFound
	}

	return nil
}
