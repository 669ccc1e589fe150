package repository

import (
	"context"
	"fmt"

	"github.com/simplepos/pos-api/internal/domain"
	"github.com/simplepos/pos-api/internal/repository/dao"
)

var (
	ErrItemNotFound   = dao.ErrItemNotFound
	ErrItemCodeExists = dao.ErrItemCodeExists
	ErrItemInUse      = dao.ErrItemInUse
)

type ItemDAO interface {
	Insert(ctx context.Context, item dao.Item) (dao.Item, error)
	FindByID(ctx context.Context, id string) (dao.Item, error)
	Update(ctx context.Context, item dao.Item) (dao.Item, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q dao.ListQuery) ([]dao.Item, int64, error)
}

type ItemRepository struct {
	dao ItemDAO
}

func NewItemRepository(dao ItemDAO) *ItemRepository {
	return &ItemRepository{
		dao: dao,
	}
}

func (r *ItemRepository) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	created, err := r.dao.Insert(ctx, itemDomainToDAO(item))
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return itemDAOToDomain(created), nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id string) (domain.Item, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return itemDAOToDomain(found), nil
}

func (r *ItemRepository) Update(ctx context.Context, item domain.Item) (domain.Item, error) {
	updated, err := r.dao.Update(ctx, itemDomainToDAO(item))
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return itemDAOToDomain(updated), nil
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ItemRepository) List(ctx context.Context, q domain.PageQuery) (domain.Page[domain.Item], error) {
	rows, total, err := r.dao.List(ctx, toListQuery(q))
	if err != nil {
		return domain.Page[domain.Item]{}, fmt.Errorf("r.dao.List -> %w", err)
	}

	items := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, itemDAOToDomain(row))
	}

	return domain.NewPage(items, q, total), nil
}

func itemDomainToDAO(item domain.Item) dao.Item {
	var code *string
	if item.Code != "" {
		code = &item.Code
	}

	return dao.Item{
		ID:         item.ID,
		Code:       code,
		Name:       item.Name,
		CategoryID: item.CategoryID,
		UnitPrice:  item.UnitPrice,
		Unit:       item.Unit,
		Quantity:   item.Quantity,
	}
}

func itemDAOToDomain(item dao.Item) domain.Item {
	var code string
	if item.Code != nil {
		code = *item.Code
	}

	return domain.Item{
		ID:           item.ID,
		Code:         code,
		Name:         item.Name,
		CategoryID:   item.CategoryID,
		CategoryName: item.Category.Name,
		UnitPrice:    item.UnitPrice,
		Unit:         item.Unit,
		Quantity:     item.Quantity,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}
