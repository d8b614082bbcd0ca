package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountKind is the closed set of bank account kinds.
type AccountKind string

const (
	CheckingAccount    AccountKind = "CHECKING_ACCOUNT"
	SavingsAccount     AccountKind = "SAVINGS_ACCOUNT"
	PrivateLoanAccount AccountKind = "PRIVATE_LOAN_ACCOUNT"
)

// TransferTarget restricts which accounts a kind may send money to.
type TransferTarget string

const (
	// TransferToAny allows transfers to every account.
	TransferToAny TransferTarget = "ANY"
	// TransferToReference allows transfers only to the account's own reference account.
	TransferToReference TransferTarget = "REFERENCE"
	// TransferToNone marks kinds that can never be the source of a transfer.
	TransferToNone TransferTarget = "NONE"
)

// AllAccountKinds lists every kind in declaration order.
var AllAccountKinds = []AccountKind{CheckingAccount, SavingsAccount, PrivateLoanAccount}

// IsValid reports whether k is a known kind.
func (k AccountKind) IsValid() bool {
	switch k {
	case CheckingAccount, SavingsAccount, PrivateLoanAccount:
		return true
	default:
		return false
	}
}

// Withdrawable reports whether money may leave an account of this kind.
func (k AccountKind) Withdrawable() bool {
	switch k {
	case CheckingAccount, SavingsAccount:
		return true
	default:
		return false
	}
}

// TransferTarget returns the destination restriction of the kind.
func (k AccountKind) TransferTarget() TransferTarget {
	switch k {
	case CheckingAccount:
		return TransferToAny
	case SavingsAccount:
		return TransferToReference
	default:
		return TransferToNone
	}
}

// RequiresReference reports whether accounts of this kind are opened together
// with a companion checking account.
func (k AccountKind) RequiresReference() bool {
	return k == SavingsAccount
}

// ParseAccountKind converts a stored or configured kind name into an AccountKind.
func ParseAccountKind(s string) (AccountKind, error) {
	k := AccountKind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("unknown account kind %q", s)
	}
	return k, nil
}

// Account represents a bank account within the core domain.
// Values handed out by the store are working copies; changes only become
// visible to other callers once the copy is saved back.
type Account struct {
	IBAN               string          `json:"iban"`               // Primary Key, immutable
	Balance            decimal.Decimal `json:"balance"`            // Current balance
	Kind               AccountKind     `json:"accountType"`        // CHECKING_ACCOUNT, SAVINGS_ACCOUNT, ...
	ReferenceAccountID *string         `json:"referenceAccountID"` // Nullable, set once for savings accounts
	IsLocked           bool            `json:"isLocked"`
	AuditFields
	Transactions []Transaction `json:"-"` // Append-only
}

// ReferenceAccount returns the reference account IBAN, if any.
func (a *Account) ReferenceAccount() (string, bool) {
	if a.ReferenceAccountID == nil {
		return "", false
	}
	return *a.ReferenceAccountID, true
}

// Clone returns a deep copy of the account, including its transaction records.
func (a Account) Clone() Account {
	cp := a
	if a.ReferenceAccountID != nil {
		ref := *a.ReferenceAccountID
		cp.ReferenceAccountID = &ref
	}
	if a.Transactions != nil {
		cp.Transactions = make([]Transaction, len(a.Transactions))
		copy(cp.Transactions, a.Transactions)
	}
	return cp
}
