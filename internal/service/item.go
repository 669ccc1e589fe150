package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/simplepos/pos-api/internal/domain"
)

type ItemRepository interface {
	Create(ctx context.Context, item domain.Item) (domain.Item, error)
	FindByID(ctx context.Context, id string) (domain.Item, error)
	Update(ctx context.Context, item domain.Item) (domain.Item, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q domain.PageQuery) (domain.Page[domain.Item], error)
}

type ItemCategoryFinder interface {
	FindByID(ctx context.Context, id string) (domain.Category, error)
}

type ItemIDs interface {
	ItemID() string
}

type ItemService struct {
	repo       ItemRepository
	categories ItemCategoryFinder
	ids        ItemIDs
	notifier   StockNotifier
}

func NewItemService(repo ItemRepository, categories ItemCategoryFinder, ids ItemIDs, notifier StockNotifier) *ItemService {
	return &ItemService{
		repo:       repo,
		categories: categories,
		ids:        ids,
		notifier:   notifierOrNoop(notifier),
	}
}

func (s *ItemService) CreateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	item = trimItem(item)
	if err := validateItem(item); err != nil {
		return domain.Item{}, err
	}
	if _, err := s.categories.FindByID(ctx, item.CategoryID); err != nil {
		return domain.Item{}, fmt.Errorf("s.categories.FindByID -> %w", err)
	}

	item.ID = s.ids.ItemID()

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ItemService) GetItem(ctx context.Context, id string) (domain.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return item, nil
}

// UpdateItem replaces every editable field, including the quantity on hand.
func (s *ItemService) UpdateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	item = trimItem(item)
	if err := validateItem(item); err != nil {
		return domain.Item{}, err
	}
	if _, err := s.categories.FindByID(ctx, item.CategoryID); err != nil {
		return domain.Item{}, fmt.Errorf("s.categories.FindByID -> %w", err)
	}

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	s.notifier.Publish([]domain.StockLevel{{ItemID: updated.ID, ItemName: updated.Name, Quantity: updated.Quantity}})

	return updated, nil
}

func (s *ItemService) DeleteItem(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *ItemService) ListItems(ctx context.Context, q domain.PageQuery) (domain.Page[domain.Item], error) {
	q = q.Normalize()

	page, err := s.repo.List(ctx, q)
	if err != nil {
		return domain.Page[domain.Item]{}, fmt.Errorf("s.repo.List -> %w", err)
	}

	return page, nil
}

func trimItem(item domain.Item) domain.Item {
	item.Code = strings.TrimSpace(item.Code)
	item.Name = strings.TrimSpace(item.Name)
	item.Unit = strings.TrimSpace(item.Unit)
	item.CategoryID = strings.TrimSpace(item.CategoryID)

	return item
}

func validateItem(item domain.Item) error {
	switch {
	case item.Name == "":
		return invalid("name is required")
	case item.CategoryID == "":
		return invalid("category_id is required")
	case item.Unit == "":
		return invalid("unit is required")
	case !item.UnitPrice.IsPositive():
		return invalid("unit_price must be greater than zero")
	case !domain.FitsMoney(item.UnitPrice):
		return invalid("unit_price must have at most %d decimal places and be less than 1000000000000", domain.MoneyScale)
	case item.Quantity.IsNegative():
		return invalid("quantity must not be negative")
	case !domain.FitsQuantity(item.Quantity):
		return invalid("quantity must have at most %d decimal places and be less than 100000000000", domain.QuantityScale)
	}

	return nil
}
