package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_tracker/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker/internal/dto"
	"github.com/SscSPs/budget_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	location           *time.Location
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade, loc *time.Location) *transactionHandler {
	return &transactionHandler{transactionService: ts, location: loc}
}

func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade, loc *time.Location) {
	h := newTransactionHandler(transactionService, loc)

	txns := rg.Group("/transactions")
	{
		txns.POST("", h.createTransaction)
		txns.GET("", h.listTransactions)
		txns.GET("/:id", h.getTransaction)
		txns.PUT("/:id", h.updateTransaction)
		txns.DELETE("/:id", h.deleteTransaction)
	}
}

func toMutationResponse(res *portssvc.TransactionResult) dto.TransactionMutationResponse {
	return dto.TransactionMutationResponse{
		Transaction: dto.ToTransactionResponse(&res.Transaction),
		Balances:    res.Balances,
	}
}

// createTransaction godoc
// @Summary Record a transaction
// @Description Stores the transaction and applies its amount to the account balance atomically.
// @Description Positive amounts need an INCOME category, negative amounts an EXPENSE category.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionMutationResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid amount, validation error or category mismatch"
// @Failure 404 {object} handlers.ErrorResponse "Account or category not found"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	res, err := h.transactionService.CreateTransaction(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create transaction")
		return
	}
	c.JSON(http.StatusCreated, toMutationResponse(res))
}

// listTransactions godoc
// @Summary List transactions
// @Description Newest first. from is inclusive, to is exclusive.
// @Tags transactions
// @Produce  json
// @Param   accountID query string false "Account ID"
// @Param   categoryID query string false "Category ID"
// @Param   from query string false "RFC 3339 timestamp or YYYY-MM-DD"
// @Param   to query string false "RFC 3339 timestamp or YYYY-MM-DD"
// @Param   limit query int false "Page size" default(200)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	from, err := optionalDateParam(params.From, h.location)
	if err != nil {
		respondWithError(c, logger, err, "Invalid from date")
		return
	}
	to, err := optionalDateParam(params.To, h.location)
	if err != nil {
		respondWithError(c, logger, err, "Invalid to date")
		return
	}

	txns, err := h.transactionService.ListTransactions(c.Request.Context(), portsrepo.TransactionFilter{
		AccountID:   params.AccountID,
		CategoryID:  params.CategoryID,
		From:        from,
		ToExclusive: to,
		Limit:       params.Limit,
		Offset:      params.Offset,
	})
	if err != nil {
		respondWithError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Omitted fields keep their value. Balances of the old and new account are corrected atomically.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Param   transaction body dto.UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} dto.TransactionMutationResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	res, err := h.transactionService.UpdateTransaction(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update transaction")
		return
	}
	c.JSON(http.StatusOK, toMutationResponse(res))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Reverts the amount from the account balance. Unknown IDs succeed without effect.
// @Tags transactions
// @Param   id path string true "Transaction ID"
// @Success 204
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")
	if err := h.transactionService.DeleteTransaction(c.Request.Context(), transactionID); err != nil {
		respondWithError(c, logger, err, "Failed to delete transaction")
		return
	}
	logger.Debug("Transaction delete handled", slog.String("transaction_id", transactionID))
	c.Status(http.StatusNoContent)
}
