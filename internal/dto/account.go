package dto

import (
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to open a new account.
type CreateAccountRequest struct {
	AccountType string `json:"accountType" binding:"required" example:"SAVINGS"`
}

// CreateAccountResponse returns the IBAN of a newly opened account.
type CreateAccountResponse struct {
	IBAN string `json:"iban"`
}

// IBANRequest identifies a single account, used by lock and unlock.
type IBANRequest struct {
	IBAN string `json:"iban" binding:"required,iban"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	IBAN             string             `json:"iban"`
	Balance          decimal.Decimal    `json:"balance"`
	AccountType      domain.AccountKind `json:"accountType"`
	ReferenceAccount *string            `json:"referenceAccount,omitempty"`
	Locked           bool               `json:"locked"`
	CreatedAt        time.Time          `json:"createdAt"`
	LastUpdatedAt    time.Time          `json:"lastUpdatedAt"`
}

// ListAccountsResponse wraps the result of an account filter query.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// AccountBalanceResponse defines the data returned for an account balance query.
type AccountBalanceResponse struct {
	IBAN    string          `json:"iban"`
	Balance decimal.Decimal `json:"balance"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		IBAN:             acc.IBAN,
		Balance:          acc.Balance,
		AccountType:      acc.Kind,
		ReferenceAccount: acc.ReferenceAccountID,
		Locked:           acc.IsLocked,
		CreatedAt:        acc.CreatedAt,
		LastUpdatedAt:    acc.LastUpdatedAt,
	}
}

// ToListAccountsResponse converts a slice of domain.Account to the list response
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return ListAccountsResponse{Accounts: res}
}
