package service

import (
	"context"
	"strings"

	"github.com/simplepos/pos-api/internal/domain"
	"github.com/simplepos/pos-api/internal/repository"
)

type stubCategoryRepo struct {
	categories map[string]domain.Category
	inUse      map[string]bool
}

var _ CategoryRepository = (*stubCategoryRepo)(nil)

func newStubCategoryRepo(cs ...domain.Category) *stubCategoryRepo {
	r := &stubCategoryRepo{categories: make(map[string]domain.Category), inUse: make(map[string]bool)}
	for _, c := range cs {
		r.categories[c.ID] = c
	}

	return r
}

func (r *stubCategoryRepo) nameTaken(name, exceptID string) bool {
	for _, c := range r.categories {
		if c.ID != exceptID && c.Name == name {
			return true
		}
	}

	return false
}

func (r *stubCategoryRepo) Create(_ context.Context, c domain.Category) (domain.Category, error) {
	if r.nameTaken(c.Name, "") {
		return domain.Category{}, repository.ErrCategoryNameExists
	}
	r.categories[c.ID] = c

	return c, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id string) (domain.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return domain.Category{}, repository.ErrCategoryNotFound
	}

	return c, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c domain.Category) (domain.Category, error) {
	if _, ok := r.categories[c.ID]; !ok {
		return domain.Category{}, repository.ErrCategoryNotFound
	}
	if r.nameTaken(c.Name, c.ID) {
		return domain.Category{}, repository.ErrCategoryNameExists
	}
	r.categories[c.ID] = c

	return c, nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return repository.ErrCategoryNotFound
	}
	if r.inUse[id] {
		return repository.ErrCategoryInUse
	}
	delete(r.categories, id)

	return nil
}

func (r *stubCategoryRepo) List(_ context.Context, q domain.PageQuery) (domain.Page[domain.Category], error) {
	all := make([]domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		all = append(all, c)
	}

	return memPage(all, q,
		func(c domain.Category) string { return c.ID },
		func(c domain.Category, s string) bool { return strings.Contains(strings.ToLower(c.Name), s) },
	), nil
}

type stubItemRepo struct {
	items map[string]domain.Item
}

var _ ItemRepository = (*stubItemRepo)(nil)

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{items: make(map[string]domain.Item)}
}

func (r *stubItemRepo) Create(_ context.Context, item domain.Item) (domain.Item, error) {
	for _, existing := range r.items {
		if item.Code != "" && existing.Code == item.Code {
			return domain.Item{}, repository.ErrItemCodeExists
		}
	}
	r.items[item.ID] = item

	return item, nil
}

func (r *stubItemRepo) FindByID(_ context.Context, id string) (domain.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return domain.Item{}, repository.ErrItemNotFound
	}

	return item, nil
}

func (r *stubItemRepo) Update(_ context.Context, item domain.Item) (domain.Item, error) {
	if _, ok := r.items[item.ID]; !ok {
		return domain.Item{}, repository.ErrItemNotFound
	}
	r.items[item.ID] = item

	return item, nil
}

func (r *stubItemRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return repository.ErrItemNotFound
	}
	delete(r.items, id)

	return nil
}

func (r *stubItemRepo) List(_ context.Context, q domain.PageQuery) (domain.Page[domain.Item], error) {
	all := make([]domain.Item, 0, len(r.items))
	for _, item := range r.items {
		all = append(all, item)
	}

	return memPage(all, q,
		func(i domain.Item) string { return i.ID },
		func(i domain.Item, s string) bool {
			return strings.Contains(strings.ToLower(i.Name), s) || strings.Contains(strings.ToLower(i.Code), s)
		},
	), nil
}

type stubEmployeeRepo struct {
	employees map[string]domain.Employee
}

var (
	_ EmployeeRepository     = (*stubEmployeeRepo)(nil)
	_ AuthEmployeeRepository = (*stubEmployeeRepo)(nil)
)

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{employees: make(map[string]domain.Employee)}
}

func (r *stubEmployeeRepo) usernameTaken(username, exceptID string) bool {
	for _, e := range r.employees {
		if e.ID != exceptID && e.Username == username {
			return true
		}
	}

	return false
}

func (r *stubEmployeeRepo) Create(_ context.Context, e domain.Employee) (domain.Employee, error) {
	if r.usernameTaken(e.Username, "") {
		return domain.Employee{}, repository.ErrUsernameExists
	}
	r.employees[e.ID] = e

	return e, nil
}

func (r *stubEmployeeRepo) FindByID(_ context.Context, id string) (domain.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return domain.Employee{}, repository.ErrEmployeeNotFound
	}

	return e, nil
}

func (r *stubEmployeeRepo) FindByUsername(_ context.Context, username string) (domain.Employee, error) {
	for _, e := range r.employees {
		if e.Username == username {
			return e, nil
		}
	}

	return domain.Employee{}, repository.ErrEmployeeNotFound
}

func (r *stubEmployeeRepo) Update(_ context.Context, e domain.Employee) (domain.Employee, error) {
	current, ok := r.employees[e.ID]
	if !ok {
		return domain.Employee{}, repository.ErrEmployeeNotFound
	}
	if r.usernameTaken(e.Username, e.ID) {
		return domain.Employee{}, repository.ErrUsernameExists
	}
	if e.Password == "" {
		e.Password = current.Password
	}
	r.employees[e.ID] = e

	return e, nil
}

func (r *stubEmployeeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.employees[id]; !ok {
		return repository.ErrEmployeeNotFound
	}
	delete(r.employees, id)

	return nil
}

func (r *stubEmployeeRepo) List(_ context.Context, q domain.PageQuery) (domain.Page[domain.Employee], error) {
	all := make([]domain.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		all = append(all, e)
	}

	return memPage(all, q,
		func(e domain.Employee) string { return e.ID },
		func(e domain.Employee, s string) bool {
			return strings.Contains(strings.ToLower(e.Name), s) ||
				strings.Contains(strings.ToLower(e.Username), s) ||
				strings.Contains(string(e.Role), s)
		},
	), nil
}
