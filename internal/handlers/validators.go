package handlers

import (
	"net/http"
	"sync"

	"github.com/SscSPs/bank_ledger_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the request tags used by the DTOs:
// dgt0 for strictly positive decimal amounts and iban for well-formed IBANs.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("dgt0", positiveDecimal)
		_ = v.RegisterValidation("iban", validIBAN)
	})
}

// positiveDecimal compares exactly; a float conversion would round tiny amounts to zero.
func positiveDecimal(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return ok && d.Sign() > 0
}

func validIBAN(fl validator.FieldLevel) bool {
	return utils.IsValidIBAN(fl.Field().String())
}

// ibanQuery reads the iban query parameter, answering 400 when it is
// missing or malformed.
func ibanQuery(c *gin.Context) (string, bool) {
	iban := c.Query("iban")
	switch {
	case iban == "":
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter iban is required"})
		return "", false
	case !utils.IsValidIBAN(iban):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter iban is not a valid IBAN"})
		return "", false
	}
	return iban, true
}
