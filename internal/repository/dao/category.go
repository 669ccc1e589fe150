package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID   string `gorm:"primaryKey;size:16"`
	Name string `gorm:"uniqueIndex;not null"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Category) TableName() string {
	return "categories"
}

type CategoryDAO struct {
	db *gorm.DB
}

func NewCategoryDAO(db *gorm.DB) *CategoryDAO {
	return &CategoryDAO{
		db: db,
	}
}

func (d *CategoryDAO) Insert(ctx context.Context, c Category) (Category, error) {
	if err := d.db.WithContext(ctx).Create(&c).Error; err != nil {
		if _, ok := isUniqueViolation(err); ok {
			return Category{}, ErrCategoryNameExists
		}

		return Category{}, err
	}

	return c, nil
}

func (d *CategoryDAO) FindByID(ctx context.Context, id string) (Category, error) {
	var c Category

	result := d.db.WithContext(ctx).First(&c, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Category{}, ErrCategoryNotFound
		}

		return Category{}, result.Error
	}

	return c, nil
}

func (d *CategoryDAO) Update(ctx context.Context, c Category) (Category, error) {
	result := d.db.WithContext(ctx).Model(&Category{ID: c.ID}).Update("name", c.Name)
	if result.Error != nil {
		if _, ok := isUniqueViolation(result.Error); ok {
			return Category{}, ErrCategoryNameExists
		}

		return Category{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Category{}, ErrCategoryNotFound
	}

	return d.FindByID(ctx, c.ID)
}

func (d *CategoryDAO) Delete(ctx context.Context, id string) error {
	result := d.db.WithContext(ctx).Delete(&Category{}, "id = ?", id)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return ErrCategoryInUse
		}

		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

func (d *CategoryDAO) List(ctx context.Context, q ListQuery) ([]Category, int64, error) {
	base := d.db.WithContext(ctx).Model(&Category{})
	if q.Search != "" {
		base = base.Where("name ILIKE ?", q.like())
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []Category
	err := base.Order("created_at ASC").Order("id ASC").
		Limit(q.Limit).Offset(q.Offset).
		Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}
