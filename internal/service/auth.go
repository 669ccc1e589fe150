package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/simplepos/pos-api/internal/domain"
	"github.com/simplepos/pos-api/internal/repository"
)

var ErrWrongPassword = errors.New("wrong password")

type AuthEmployeeRepository interface {
	FindByUsername(ctx context.Context, username string) (domain.Employee, error)
}

type AuthService struct {
	repo AuthEmployeeRepository
}

func NewAuthService(repo AuthEmployeeRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Employee, error) {
	e, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return domain.Employee{}, ErrEmployeeNotFound
		}

		return domain.Employee{}, fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(e.Password), []byte(password)); err != nil {
		return domain.Employee{}, ErrWrongPassword
	}

	return e, nil
}
