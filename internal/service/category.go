package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/simplepos/pos-api/internal/domain"
)

type CategoryRepository interface {
	Create(ctx context.Context, c domain.Category) (domain.Category, error)
	FindByID(ctx context.Context, id string) (domain.Category, error)
	Update(ctx context.Context, c domain.Category) (domain.Category, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q domain.PageQuery) (domain.Page[domain.Category], error)
}

type CategoryIDs interface {
	CategoryID() string
}

type CategoryService struct {
	repo CategoryRepository
	ids  CategoryIDs
}

func NewCategoryService(repo CategoryRepository, ids CategoryIDs) *CategoryService {
	return &CategoryService{
		repo: repo,
		ids:  ids,
	}
}

func (s *CategoryService) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, invalid("name is required")
	}

	created, err := s.repo.Create(ctx, domain.Category{ID: s.ids.CategoryID(), Name: name})
	if err != nil {
		return domain.Category{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id, name string) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, invalid("name is required")
	}

	updated, err := s.repo.Update(ctx, domain.Category{ID: id, Name: name})
	if err != nil {
		return domain.Category{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *CategoryService) ListCategories(ctx context.Context, q domain.PageQuery) (domain.Page[domain.Category], error) {
	q = q.Normalize()

	page, err := s.repo.List(ctx, q)
	if err != nil {
		return domain.Page[domain.Category]{}, fmt.Errorf("s.repo.List -> %w", err)
	}

	return page, nil
}
