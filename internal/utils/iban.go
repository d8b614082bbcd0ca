package utils

import (
	"fmt"
	"strings"
)

const (
	// DefaultIBANCountryCode is the country prefix used when none is configured.
	DefaultIBANCountryCode = "DE"
	// DefaultIBANBankCode is the fixed institution code used when none is configured.
	DefaultIBANBankCode = "12345123"

	ibanAccountNumberDigits = 10
)

// IBANGenerator produces random IBAN candidates for a single country and bank code.
// Candidates are not guaranteed to be unique; callers check them against the store.
type IBANGenerator struct {
	countryCode string
	bankCode    string
}

// NewIBANGenerator validates the country and bank code and returns a generator.
func NewIBANGenerator(countryCode, bankCode string) (*IBANGenerator, error) {
	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))
	if len(countryCode) != 2 || !isUpperAlpha(countryCode) {
		return nil, fmt.Errorf("invalid IBAN country code %q", countryCode)
	}
	if bankCode == "" || !isDigits(bankCode) {
		return nil, fmt.Errorf("invalid IBAN bank code %q", bankCode)
	}
	return &IBANGenerator{countryCode: countryCode, bankCode: bankCode}, nil
}

// Generate returns a new IBAN with a random account number and valid check digits.
func (g *IBANGenerator) Generate() (string, error) {
	accountNumber, err := GenerateSecureRandomDigits(ibanAccountNumberDigits)
	if err != nil {
		return "", fmt.Errorf("failed to generate account number: %w", err)
	}
	bban := g.bankCode + accountNumber
	check := 98 - mod97(bban+letterDigits(g.countryCode)+"00")
	return fmt.Sprintf("%s%02d%s", g.countryCode, check, bban), nil
}

// IsValidIBAN performs the ISO 13616 mod-97 check on an IBAN without spaces.
func IsValidIBAN(iban string) bool {
	if len(iban) < 5 {
		return false
	}
	country, check, bban := iban[:2], iban[2:4], iban[4:]
	if !isUpperAlpha(country) || !isDigits(check) {
		return false
	}
	for _, r := range bban {
		if !(r >= '0' && r <= '9') && !(r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return mod97(letterDigits(bban+country)+check) == 1
}

// letterDigits replaces letters with their two-digit IBAN values (A=10 ... Z=35).
func letterDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			fmt.Fprintf(&b, "%d", r-'A'+10)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// mod97 computes the remainder of a decimal digit string divided by 97.
func mod97(digits string) int {
	rem := 0
	for _, r := range digits {
		rem = (rem*10 + int(r-'0')) % 97
	}
	return rem
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func isUpperAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return s != ""
}
