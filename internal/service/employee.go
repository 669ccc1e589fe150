package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/simplepos/pos-api/internal/domain"
)

var ErrSelfDelete = errors.New("you cannot delete your own account")

const (
	minUsernameLength = 3
	minPasswordLength = 8
	// bcrypt refuses passwords longer than this many bytes.
	maxPasswordLength = 72
)

type EmployeeRepository interface {
	Create(ctx context.Context, e domain.Employee) (domain.Employee, error)
	FindByID(ctx context.Context, id string) (domain.Employee, error)
	Update(ctx context.Context, e domain.Employee) (domain.Employee, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q domain.PageQuery) (domain.Page[domain.Employee], error)
}

type EmployeeIDs interface {
	EmployeeID() string
}

// EmployeeUpdate carries an edit to an account. Password is only applied
// when ChangePassword is set.
type EmployeeUpdate struct {
	ID             string
	Name           string
	Username       string
	Role           domain.Role
	ChangePassword bool
	Password       string
}

type EmployeeService struct {
	repo EmployeeRepository
	ids  EmployeeIDs
}

func NewEmployeeService(repo EmployeeRepository, ids EmployeeIDs) *EmployeeService {
	return &EmployeeService{
		repo: repo,
		ids:  ids,
	}
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	e.Name = strings.TrimSpace(e.Name)
	e.Username = strings.TrimSpace(e.Username)
	if err := validateAccount(e.Name, e.Username, e.Role); err != nil {
		return domain.Employee{}, err
	}
	if err := checkPassword(e.Password); err != nil {
		return domain.Employee{}, err
	}

	hash, err := hashPassword(e.Password)
	if err != nil {
		return domain.Employee{}, err
	}
	e.Password = hash
	e.ID = s.ids.EmployeeID()

	created, err := s.repo.Create(ctx, e)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EmployeeService) UpdateEmployee(ctx context.Context, u EmployeeUpdate) (domain.Employee, error) {
	u.Name = strings.TrimSpace(u.Name)
	u.Username = strings.TrimSpace(u.Username)
	if err := validateAccount(u.Name, u.Username, u.Role); err != nil {
		return domain.Employee{}, err
	}

	e := domain.Employee{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Role:     u.Role,
	}

	if u.ChangePassword {
		if err := checkPassword(u.Password); err != nil {
			return domain.Employee{}, err
		}

		hash, err := hashPassword(u.Password)
		if err != nil {
			return domain.Employee{}, err
		}
		e.Password = hash
	}

	updated, err := s.repo.Update(ctx, e)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *EmployeeService) DeleteEmployee(ctx context.Context, who domain.Identity, id string) error {
	if who.SubjectID == id {
		return ErrSelfDelete
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *EmployeeService) GetEmployee(ctx context.Context, id string) (domain.Employee, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return e, nil
}

func (s *EmployeeService) ListEmployees(ctx context.Context, q domain.PageQuery) (domain.Page[domain.Employee], error) {
	q = q.Normalize()

	page, err := s.repo.List(ctx, q)
	if err != nil {
		return domain.Page[domain.Employee]{}, fmt.Errorf("s.repo.List -> %w", err)
	}

	return page, nil
}

func validateAccount(name, username string, role domain.Role) error {
	switch {
	case name == "":
		return invalid("name is required")
	case len(username) < minUsernameLength:
		return invalid("username must be at least %d characters", minUsernameLength)
	case !role.Valid():
		return invalid("role must be one of admin, employee")
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	return string(hash), nil
}

func checkPassword(password string) error {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return invalid("password must be %d to %d bytes long", minPasswordLength, maxPasswordLength)
	}

	return nil
}
