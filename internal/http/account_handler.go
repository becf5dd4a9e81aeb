package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/linkon63/neocomerze/internal/account"
	"github.com/linkon63/neocomerze/internal/domain"
)

// AccountService covers registration, login and profile lookup.
type AccountService interface {
	Register(ctx context.Context, phone, password string) (*domain.Account, error)
	Login(ctx context.Context, phone, password string) (*domain.Account, error)
	Profile(ctx context.Context, phone string) (*domain.Account, *domain.Customer, error)
}

type AccountHandler struct {
	accounts AccountService
	timeout  time.Duration
}

func NewAccountHandler(accounts AccountService, timeout time.Duration) *AccountHandler {
	return &AccountHandler{accounts: accounts, timeout: timeout}
}

type CredentialsRequestDTO struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type AccountResponseDTO struct {
	Phone      string `json:"phone"`
	CustomerID int64  `json:"customer_id"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
}

type ProfileResponseDTO struct {
	Account  AccountResponseDTO `json:"account"`
	Customer *domain.Customer   `json:"customer,omitempty"`
}

func accountDTO(a *domain.Account) AccountResponseDTO {
	return AccountResponseDTO{
		Phone:      a.Phone,
		CustomerID: a.CustomerID,
		FirstName:  a.FirstName,
		LastName:   a.LastName,
	}
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CredentialsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	acct, err := h.accounts.Register(ctx, req.Phone, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrAccountExists):
			respondError(w, http.StatusConflict, "account_exists", "account already registered")
		case errors.Is(err, account.ErrMissingFields):
			respondError(w, http.StatusBadRequest, "invalid_request", "phone and password are required")
		default:
			respondError(w, http.StatusBadGateway, "registration_failed", "could not register account")
		}
		return
	}

	respondJSON(w, http.StatusCreated, accountDTO(acct))
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CredentialsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	acct, err := h.accounts.Login(ctx, req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "invalid_credentials", "invalid phone or password")
			return
		}
		respondError(w, http.StatusInternalServerError, "login_failed", "could not log in")
		return
	}

	respondJSON(w, http.StatusOK, accountDTO(acct))
}

func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	phone := r.URL.Query().Get("phone")
	if phone == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "phone is required")
		return
	}

	acct, customer, err := h.accounts.Profile(ctx, phone)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "account not found")
			return
		}
		respondError(w, http.StatusBadGateway, "profile_failed", "could not load profile")
		return
	}

	respondJSON(w, http.StatusOK, ProfileResponseDTO{
		Account:  accountDTO(acct),
		Customer: customer,
	})
}
