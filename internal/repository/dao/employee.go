package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Employee struct {
	ID string `gorm:"primaryKey;size:16"`

	Name     string `gorm:"not null"`
	Username string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
	Role     string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EmployeeDAO struct {
	db *gorm.DB
}

func NewEmployeeDAO(db *gorm.DB) *EmployeeDAO {
	return &EmployeeDAO{
		db: db,
	}
}

func (d *EmployeeDAO) Insert(ctx context.Context, e Employee) (Employee, error) {
	if err := d.db.WithContext(ctx).Create(&e).Error; err != nil {
		if _, ok := isUniqueViolation(err); ok {
			return Employee{}, ErrUsernameExists
		}

		return Employee{}, err
	}

	return e, nil
}

// Upsert creates the employee or, when the username is taken, resets its
// name, password and role.
func (d *EmployeeDAO) Upsert(ctx context.Context, e Employee) error {
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "password", "role", "updated_at"}),
	}).Create(&e).Error
}

func (d *EmployeeDAO) FindByID(ctx context.Context, id string) (Employee, error) {
	var e Employee

	result := d.db.WithContext(ctx).First(&e, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Employee{}, ErrEmployeeNotFound
		}

		return Employee{}, result.Error
	}

	return e, nil
}

func (d *EmployeeDAO) FindByUsername(ctx context.Context, username string) (Employee, error) {
	var e Employee

	result := d.db.WithContext(ctx).First(&e, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Employee{}, ErrEmployeeNotFound
		}

		return Employee{}, result.Error
	}

	return e, nil
}

// Update writes every mutable column. An empty password keeps the stored hash.
func (d *EmployeeDAO) Update(ctx context.Context, e Employee) (Employee, error) {
	columns := []string{"name", "username", "role", "updated_at"}
	if e.Password != "" {
		columns = append(columns, "password")
	}

	result := d.db.WithContext(ctx).Model(&Employee{ID: e.ID}).Select(columns).Updates(&e)
	if result.Error != nil {
		if _, ok := isUniqueViolation(result.Error); ok {
			return Employee{}, ErrUsernameExists
		}

		return Employee{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Employee{}, ErrEmployeeNotFound
	}

	return d.FindByID(ctx, e.ID)
}

func (d *EmployeeDAO) Delete(ctx context.Context, id string) error {
	result := d.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return ErrEmployeeInUse
		}

		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEmployeeNotFound
	}

	return nil
}

func (d *EmployeeDAO) List(ctx context.Context, q ListQuery) ([]Employee, int64, error) {
	base := d.db.WithContext(ctx).Model(&Employee{})
	if q.Search != "" {
		like := q.like()
		base = base.Where("name ILIKE ? OR username ILIKE ? OR role ILIKE ?", like, like, like)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []Employee
	err := base.Order("created_at ASC").Order("id ASC").
		Limit(q.Limit).Offset(q.Offset).
		Find(&employees).Error
	if err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}
