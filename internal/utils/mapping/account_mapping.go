package mapping

import (
	"fmt"
	"strings"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
)

// requestAccountTypes maps the account type names used by the API to domain kinds.
var requestAccountTypes = map[string]domain.AccountKind{
	"CHECKING":     domain.CheckingAccount,
	"SAVINGS":      domain.SavingsAccount,
	"PRIVATE_LOAN": domain.PrivateLoanAccount,
}

// ToDomainAccountKind converts an API account type to a domain kind.
// The full domain names are accepted as well.
func ToDomainAccountKind(s string) (domain.AccountKind, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if kind, ok := requestAccountTypes[s]; ok {
		return kind, nil
	}
	if kind, err := domain.ParseAccountKind(s); err == nil {
		return kind, nil
	}
	return "", fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, s)
}

// ToDomainAccountKinds converts the accountTypes query values, which may be
// repeated or comma separated, into a deduplicated list of kinds.
func ToDomainAccountKinds(values []string) ([]domain.AccountKind, error) {
	seen := make(map[domain.AccountKind]struct{})
	kinds := make([]domain.AccountKind, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			kind, err := ToDomainAccountKind(part)
			if err != nil {
				return nil, err
			}
			if _, dup := seen[kind]; !dup {
				seen[kind] = struct{}{}
				kinds = append(kinds, kind)
			}
		}
	}
	return kinds, nil
}
