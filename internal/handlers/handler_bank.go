package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/budget_tracker/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker/internal/dto"
	"github.com/SscSPs/budget_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bankHandler handles HTTP requests related to banks.
type bankHandler struct {
	bankService portssvc.BankSvcFacade
}

func newBankHandler(bs portssvc.BankSvcFacade) *bankHandler {
	return &bankHandler{bankService: bs}
}

// registerBankRoutes registers routes related to banks.
func registerBankRoutes(rg *gin.RouterGroup, bankService portssvc.BankSvcFacade) {
	h := newBankHandler(bankService)

	banks := rg.Group("/banks")
	{
		banks.POST("", h.createBank)
		banks.GET("", h.listBanks)
		banks.GET("/:id", h.getBank)
		banks.PUT("/:id", h.updateBank)
		banks.DELETE("/:id", h.deleteBank)
	}
}

// createBank godoc
// @Summary Create a bank
// @Tags banks
// @Accept  json
// @Produce  json
// @Param   bank body dto.CreateBankRequest true "Bank details"
// @Success 201 {object} dto.BankResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 409 {object} handlers.ErrorResponse "Bank name already taken"
// @Security BearerAuth
// @Router /banks [post]
func (h *bankHandler) createBank(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	bank, err := h.bankService.CreateBank(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create bank")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBankResponse(bank))
}

// listBanks godoc
// @Summary List banks
// @Tags banks
// @Produce  json
// @Success 200 {array} dto.BankResponse
// @Security BearerAuth
// @Router /banks [get]
func (h *bankHandler) listBanks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	banks, err := h.bankService.ListBanks(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list banks")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBankResponse(banks))
}

// getBank godoc
// @Summary Get a bank by ID
// @Tags banks
// @Produce  json
// @Param   id path string true "Bank ID"
// @Success 200 {object} dto.BankResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Security BearerAuth
// @Router /banks/{id} [get]
func (h *bankHandler) getBank(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bank, err := h.bankService.GetBankByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve bank")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankResponse(bank))
}

// updateBank godoc
// @Summary Update a bank
// @Tags banks
// @Accept  json
// @Produce  json
// @Param   id path string true "Bank ID"
// @Param   bank body dto.UpdateBankRequest true "Bank details"
// @Success 200 {object} dto.BankResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Security BearerAuth
// @Router /banks/{id} [put]
func (h *bankHandler) updateBank(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	bank, err := h.bankService.UpdateBank(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update bank")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankResponse(bank))
}

// deleteBank godoc
// @Summary Delete a bank
// @Description Fails with 409 while accounts still reference the bank.
// @Tags banks
// @Param   id path string true "Bank ID"
// @Success 204
// @Failure 404 {object} handlers.ErrorResponse
// @Failure 409 {object} handlers.ErrorResponse "Bank in use"
// @Security BearerAuth
// @Router /banks/{id} [delete]
func (h *bankHandler) deleteBank(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bankID := c.Param("id")
	if err := h.bankService.DeleteBank(c.Request.Context(), bankID); err != nil {
		respondWithError(c, logger, err, "Failed to delete bank")
		return
	}
	logger.Info("Bank deleted", slog.String("bank_id", bankID))
	c.Status(http.StatusNoContent)
}
