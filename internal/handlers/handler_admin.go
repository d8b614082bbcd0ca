package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes registers maintenance routes. Only mounted outside production.
func RegisterAdminRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	admin := rg.Group("/admin")
	admin.DELETE("/accounts", func(c *gin.Context) {
		resetLedger(c, ledgerService)
	})
}

// resetLedger godoc
// @Summary Delete all accounts
// @Description Removes every account and its history. Not available in production.
// @Tags admin
// @Success 204
// @Failure 500 {object} map[string]string "Failed to reset ledger"
// @Router /admin/accounts [delete]
func resetLedger(c *gin.Context, ledgerService portssvc.LedgerSvcFacade) {
	logger := middleware.GetLoggerFromContext(c)
	if err := ledgerService.ResetLedger(c.Request.Context()); err != nil {
		respondError(c, logger, err, "reset ledger")
		return
	}
	logger.Warn("All accounts deleted")
	c.Status(http.StatusNoContent)
}
