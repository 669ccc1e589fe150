package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Item struct {
	ID   string  `gorm:"primaryKey;size:16"`
	Code *string `gorm:"uniqueIndex"`
	Name string  `gorm:"not null;index"`

	CategoryID string   `gorm:"not null;index;size:16"`
	Category   Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`

	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Unit      string          `gorm:"not null"`
	Quantity  decimal.Decimal `gorm:"type:numeric(14,3);not null;default:0;check:chk_items_quantity,quantity >= 0"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ItemDAO struct {
	db *gorm.DB
}

func NewItemDAO(db *gorm.DB) *ItemDAO {
	return &ItemDAO{
		db: db,
	}
}

func (d *ItemDAO) Insert(ctx context.Context, item Item) (Item, error) {
	if err := d.db.WithContext(ctx).Omit(clause.Associations).Create(&item).Error; err != nil {
		return Item{}, mapItemWriteErr(err)
	}

	return d.FindByID(ctx, item.ID)
}

func (d *ItemDAO) FindByID(ctx context.Context, id string) (Item, error) {
	var item Item

	result := d.db.WithContext(ctx).Preload("Category").First(&item, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Item{}, ErrItemNotFound
		}

		return Item{}, result.Error
	}

	return item, nil
}

// Update overwrites the item in a single statement, so the row lock is held
// only for the write itself.
func (d *ItemDAO) Update(ctx context.Context, item Item) (Item, error) {
	result := d.db.WithContext(ctx).Model(&Item{ID: item.ID}).
		Select("code", "name", "category_id", "unit_price", "unit", "quantity", "updated_at").
		Omit(clause.Associations).
		Updates(&item)
	if result.Error != nil {
		return Item{}, mapItemWriteErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return Item{}, ErrItemNotFound
	}

	return d.FindByID(ctx, item.ID)
}

func (d *ItemDAO) Delete(ctx context.Context, id string) error {
	result := d.db.WithContext(ctx).Delete(&Item{}, "id = ?", id)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return ErrItemInUse
		}

		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}

func (d *ItemDAO) List(ctx context.Context, q ListQuery) ([]Item, int64, error) {
	base := d.db.WithContext(ctx).Model(&Item{}).
		Joins("LEFT JOIN categories ON categories.id = items.category_id")
	if q.Search != "" {
		like := q.like()
		base = base.Where("items.name ILIKE ? OR items.code ILIKE ? OR categories.name ILIKE ?", like, like, like)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []Item
	err := base.Preload("Category").
		Order("items.created_at ASC").Order("items.id ASC").
		Limit(q.Limit).Offset(q.Offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func mapItemWriteErr(err error) error {
	if _, ok := isUniqueViolation(err); ok {
		return ErrItemCodeExists
	}
	if isForeignKeyViolation(err) {
		return ErrCategoryNotFound
	}

	return err
}
