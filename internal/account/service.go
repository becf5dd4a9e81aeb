// Package account owns storefront logins: user documents keyed by phone
// number, each linked to a customer record in the inventory API.
package account

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/linkon63/neocomerze/internal/domain"
)

var (
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrMissingFields      = errors.New("phone and password required")
)

// CustomerAPI is the slice of the inventory client accounts depend on.
type CustomerAPI interface {
	CreateCustomer(ctx context.Context, phone string) (int64, error)
	Customer(ctx context.Context, id int64) (*domain.Customer, error)
}

type Service struct {
	repo Repository
	api  CustomerAPI
}

func NewService(repo Repository, api CustomerAPI) *Service {
	return &Service{repo: repo, api: api}
}

// Register provisions a customer in the inventory API, then stores the
// account document. A duplicate phone is rejected before the API call
// so failed registrations leave no half-created customer behind locally.
func (s *Service) Register(ctx context.Context, phone, password string) (*domain.Account, error) {
	if phone == "" || password == "" {
		return nil, ErrMissingFields
	}

	if _, err := s.repo.Get(ctx, phone); err == nil {
		return nil, ErrAccountExists
	} else if !errors.Is(err, ErrAccountNotFound) {
		return nil, err
	}

	customerID, err := s.api.CreateCustomer(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &domain.Account{
		Phone:        phone,
		PasswordHash: string(hash),
		CustomerID:   customerID,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Login checks the password against the stored hash. Missing accounts
// and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, phone, password string) (*domain.Account, error) {
	account, err := s.repo.Get(ctx, phone)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

// Profile resolves the account's customer record, addresses included,
// from the inventory API.
func (s *Service) Profile(ctx context.Context, phone string) (*domain.Account, *domain.Customer, error) {
	account, err := s.repo.Get(ctx, phone)
	if err != nil {
		return nil, nil, err
	}

	customer, err := s.api.Customer(ctx, account.CustomerID)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch customer: %w", err)
	}
	return account, customer, nil
}
