package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// statusFor maps a service error to its HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrAccountNotFound), errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrAccountAlreadyLocked), errors.Is(err, apperrors.ErrAccountNotLocked):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrBankAccountLocked), errors.Is(err, apperrors.ErrUnsupportedTransfer):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrInsufficientBalance), errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrWithdrawalNotSupported):
		return http.StatusNotAcceptable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON error body. Internal failures are logged
// and their details kept out of the response.
func respondError(c *gin.Context, logger *slog.Logger, err error, action string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": "Failed to " + action})
		return
	}
	logger.Warn("Rejected request to "+action, slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondBindError reports a malformed request body or query.
func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}
