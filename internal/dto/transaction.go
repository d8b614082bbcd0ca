package dto

import (
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DepositRequest credits an account.
type DepositRequest struct {
	IBAN   string          `json:"iban" binding:"required,iban"`
	Amount decimal.Decimal `json:"amount" binding:"dgt0" swaggertype:"string" example:"100.00"`
}

// TransferRequest moves money between two accounts. IBAN is the destination.
type TransferRequest struct {
	FromIBAN string          `json:"fromIban" binding:"required,iban"`
	IBAN     string          `json:"iban" binding:"required,iban"`
	Amount   decimal.Decimal `json:"amount" binding:"dgt0" swaggertype:"string" example:"40.00"`
}

// TransactionResponse defines the data returned for a transaction record.
type TransactionResponse struct {
	TransactionID   string                 `json:"transactionID"`
	IBAN            string                 `json:"iban"`
	Amount          decimal.Decimal        `json:"amount"`
	TransactionType domain.TransactionType `json:"transactionType"`
	CreatedAt       time.Time              `json:"createdAt"`
}

// TransactionHistoryResponse wraps the transaction records of an account.
type TransactionHistoryResponse struct {
	TransactionHistory []TransactionResponse `json:"transactionHistory"`
}

// ToTransactionHistoryResponse converts domain transactions to the history response
func ToTransactionHistoryResponse(txns []domain.Transaction) TransactionHistoryResponse {
	res := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = TransactionResponse{
			TransactionID:   t.TransactionID,
			IBAN:            t.AccountID,
			Amount:          t.Amount,
			TransactionType: t.TransactionType,
			CreatedAt:       t.CreatedAt,
		}
	}
	return TransactionHistoryResponse{TransactionHistory: res}
}
