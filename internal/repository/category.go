package repository

import (
	"context"
	"fmt"

	"github.com/simplepos/pos-api/internal/domain"
	"github.com/simplepos/pos-api/internal/repository/dao"
)

var (
	ErrCategoryNotFound   = dao.ErrCategoryNotFound
	ErrCategoryNameExists = dao.ErrCategoryNameExists
	ErrCategoryInUse      = dao.ErrCategoryInUse
)

type CategoryDAO interface {
	Insert(ctx context.Context, c dao.Category) (dao.Category, error)
	FindByID(ctx context.Context, id string) (dao.Category, error)
	Update(ctx context.Context, c dao.Category) (dao.Category, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q dao.ListQuery) ([]dao.Category, int64, error)
}

type CategoryRepository struct {
	dao CategoryDAO
}

func NewCategoryRepository(dao CategoryDAO) *CategoryRepository {
	return &CategoryRepository{
		dao: dao,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, c domain.Category) (domain.Category, error) {
	created, err := r.dao.Insert(ctx, dao.Category{ID: c.ID, Name: c.Name})
	if err != nil {
		return domain.Category{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return categoryDAOToDomain(created), nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (domain.Category, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return categoryDAOToDomain(found), nil
}

func (r *CategoryRepository) Update(ctx context.Context, c domain.Category) (domain.Category, error) {
	updated, err := r.dao.Update(ctx, dao.Category{ID: c.ID, Name: c.Name})
	if err != nil {
		return domain.Category{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return categoryDAOToDomain(updated), nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *CategoryRepository) List(ctx context.Context, q domain.PageQuery) (domain.Page[domain.Category], error) {
	rows, total, err := r.dao.List(ctx, toListQuery(q))
	if err != nil {
		return domain.Page[domain.Category]{}, fmt.Errorf("r.dao.List -> %w", err)
	}

	categories := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, categoryDAOToDomain(row))
	}

	return domain.NewPage(categories, q, total), nil
}

func categoryDAOToDomain(c dao.Category) domain.Category {
	return domain.Category{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
