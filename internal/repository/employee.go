package repository

import (
	"context"
	"fmt"

	"github.com/simplepos/pos-api/internal/domain"
	"github.com/simplepos/pos-api/internal/repository/dao"
)

var (
	ErrEmployeeNotFound = dao.ErrEmployeeNotFound
	ErrUsernameExists   = dao.ErrUsernameExists
	ErrEmployeeInUse    = dao.ErrEmployeeInUse
)

type EmployeeDAO interface {
	Insert(ctx context.Context, e dao.Employee) (dao.Employee, error)
	FindByID(ctx context.Context, id string) (dao.Employee, error)
	FindByUsername(ctx context.Context, username string) (dao.Employee, error)
	Update(ctx context.Context, e dao.Employee) (dao.Employee, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q dao.ListQuery) ([]dao.Employee, int64, error)
}

type EmployeeRepository struct {
	dao EmployeeDAO
}

func NewEmployeeRepository(dao EmployeeDAO) *EmployeeRepository {
	return &EmployeeRepository{
		dao: dao,
	}
}

func (r *EmployeeRepository) Create(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(e))
	if err != nil {
		return domain.Employee{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (domain.Employee, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EmployeeRepository) FindByUsername(ctx context.Context, username string) (domain.Employee, error) {
	found, err := r.dao.FindByUsername(ctx, username)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("r.dao.FindByUsername -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(e))
	if err != nil {
		return domain.Employee{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *EmployeeRepository) List(ctx context.Context, q domain.PageQuery) (domain.Page[domain.Employee], error) {
	rows, total, err := r.dao.List(ctx, toListQuery(q))
	if err != nil {
		return domain.Page[domain.Employee]{}, fmt.Errorf("r.dao.List -> %w", err)
	}

	employees := make([]domain.Employee, 0, len(rows))
	for _, row := range rows {
		employees = append(employees, r.daoToDomain(row))
	}

	return domain.NewPage(employees, q, total), nil
}

func (r *EmployeeRepository) domainToDAO(e domain.Employee) dao.Employee {
	return dao.Employee{
		ID:       e.ID,
		Name:     e.Name,
		Username: e.Username,
		Password: e.Password,
		Role:     string(e.Role),
	}
}

func (r *EmployeeRepository) daoToDomain(e dao.Employee) domain.Employee {
	return domain.Employee{
		ID:        e.ID,
		Name:      e.Name,
		Username:  e.Username,
		Password:  e.Password,
		Role:      domain.Role(e.Role),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toListQuery(q domain.PageQuery) dao.ListQuery {
	return dao.ListQuery{
		Search: q.Search,
		Limit:  q.Limit,
		Offset: q.Offset(),
	}
}
