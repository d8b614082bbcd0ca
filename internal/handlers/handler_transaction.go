package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/dto"
	"github.com/SscSPs/bank_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type transactionHandler struct {
	transferService portssvc.TransferSvcFacade
}

func newTransactionHandler(ts portssvc.TransferSvcFacade) *transactionHandler {
	return &transactionHandler{transferService: ts}
}

// RegisterTransactionRoutes registers deposit, transfer and history routes.
func RegisterTransactionRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	registerValidators()
	h := newTransactionHandler(transferService)

	txns := rg.Group("/transaction")
	{
		txns.POST("/deposit", h.deposit)
		txns.POST("/transfer", h.transfer)
		txns.GET("", h.getTransactionHistory)
	}
}

// deposit godoc
// @Summary Deposit money
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   deposit body dto.DepositRequest true "Deposit details"
// @Success 200
// @Failure 400 {object} map[string]string "Invalid input or non-positive amount"
// @Failure 403 {object} map[string]string "Account locked"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /transaction/deposit [post]
func (h *transactionHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	if err := h.transferService.CreditAccount(c.Request.Context(), req.IBAN, req.Amount); err != nil {
		respondError(c, logger, err, "deposit money")
		return
	}

	logger.Info("Deposit accepted", slog.String("iban", req.IBAN), slog.String("amount", req.Amount.String()))
	c.Status(http.StatusOK)
}

// transfer godoc
// @Summary Transfer money
// @Description Moves amount from fromIban to iban.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 200
// @Failure 400 {object} map[string]string "Invalid input or insufficient balance"
// @Failure 403 {object} map[string]string "Account locked or transfer target not allowed"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 406 {object} map[string]string "Source account does not allow withdrawals"
// @Failure 500 {object} map[string]string "Failed to transfer money"
// @Router /transaction/transfer [post]
func (h *transactionHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	if err := h.transferService.TransferMoney(c.Request.Context(), req.Amount, req.FromIBAN, req.IBAN); err != nil {
		respondError(c, logger, err, "transfer money")
		return
	}

	logger.Info("Transfer accepted",
		slog.String("from_iban", req.FromIBAN),
		slog.String("to_iban", req.IBAN),
		slog.String("amount", req.Amount.String()))
	c.Status(http.StatusOK)
}

// getTransactionHistory godoc
// @Summary Get transaction history
// @Tags transactions
// @Produce  json
// @Param   iban query string true "Account IBAN"
// @Success 200 {object} dto.TransactionHistoryResponse
// @Failure 400 {object} map[string]string "Missing or malformed IBAN"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /transaction [get]
func (h *transactionHandler) getTransactionHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	iban, ok := ibanQuery(c)
	if !ok {
		return
	}

	history, err := h.transferService.GetTransactionHistory(c.Request.Context(), iban)
	if err != nil {
		respondError(c, logger, err, "get transaction history")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionHistoryResponse(history))
}
