package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/dto"
	"github.com/SscSPs/bank_ledger_app/internal/middleware"
	"github.com/SscSPs/bank_ledger_app/internal/utils/mapping"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(ls portssvc.LedgerSvcFacade) *accountHandler {
	return &accountHandler{
		ledgerService: ls,
	}
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	registerValidators()
	h := newAccountHandler(ledgerService)

	accounts := rg.Group("/account")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.filterAccounts)
		accounts.GET("/balance", h.getAccountBalance)
		accounts.POST("/lock", h.lockAccount)
		accounts.PUT("/lock", h.unlockAccount)
	}
}

// createAccount godoc
// @Summary Open a new account
// @Description Opens an account of the given type. Opening a savings account also opens its reference checking account.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account type"
// @Success 201 {object} dto.CreateAccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Router /account [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	kind, err := mapping.ToDomainAccountKind(req.AccountType)
	if err != nil {
		respondError(c, logger, err, "create account")
		return
	}

	iban, err := h.ledgerService.CreateAccount(c.Request.Context(), kind)
	if err != nil {
		respondError(c, logger, err, "create account")
		return
	}

	logger.Info("Account created via API", slog.String("iban", iban), slog.String("account_kind", string(kind)))
	c.JSON(http.StatusCreated, dto.CreateAccountResponse{IBAN: iban})
}

// filterAccounts godoc
// @Summary Filter accounts by type
// @Description Lists all accounts whose type is one of accountTypes. The parameter may be repeated or comma separated.
// @Tags accounts
// @Produce  json
// @Param   accountTypes query []string true "Account types" collectionFormat(multi) Enums(SAVINGS, CHECKING, PRIVATE_LOAN)
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} map[string]string "Unknown or missing account type"
// @Failure 500 {object} map[string]string "Failed to filter accounts"
// @Router /account [get]
func (h *accountHandler) filterAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	values := c.QueryArray("accountTypes")
	if len(values) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter accountTypes is required"})
		return
	}

	kinds, err := mapping.ToDomainAccountKinds(values)
	if err != nil {
		respondError(c, logger, err, "filter accounts")
		return
	}

	accounts, err := h.ledgerService.FilterAccountsByKinds(c.Request.Context(), kinds)
	if err != nil {
		respondError(c, logger, err, "filter accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccountsResponse(accounts))
}

// getAccountBalance godoc
// @Summary Get account balance
// @Tags accounts
// @Produce  json
// @Param   iban query string true "Account IBAN"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 400 {object} map[string]string "Missing or malformed IBAN"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /account/balance [get]
func (h *accountHandler) getAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	iban, ok := ibanQuery(c)
	if !ok {
		return
	}

	balance, err := h.ledgerService.GetAccountBalance(c.Request.Context(), iban)
	if err != nil {
		respondError(c, logger, err, "get account balance")
		return
	}

	c.JSON(http.StatusOK, dto.AccountBalanceResponse{IBAN: iban, Balance: balance})
}

// lockAccount godoc
// @Summary Lock an account
// @Description A locked account can neither send nor receive money.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.IBANRequest true "Account to lock"
// @Success 200
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account already locked"
// @Router /account/lock [post]
func (h *accountHandler) lockAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.IBANRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	if err := h.ledgerService.LockAccount(c.Request.Context(), req.IBAN); err != nil {
		respondError(c, logger, err, "lock account")
		return
	}
	c.Status(http.StatusOK)
}

// unlockAccount godoc
// @Summary Unlock an account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.IBANRequest true "Account to unlock"
// @Success 200
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account not locked"
// @Router /account/lock [put]
func (h *accountHandler) unlockAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.IBANRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	if err := h.ledgerService.UnlockAccount(c.Request.Context(), req.IBAN); err != nil {
		respondError(c, logger, err, "unlock account")
		return
	}
	c.Status(http.StatusOK)
}
