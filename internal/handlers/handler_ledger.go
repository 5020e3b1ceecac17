package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pbk-app/project_bookkeeping_app/internal/apperrors"
	portssvc "github.com/pbk-app/project_bookkeeping_app/internal/core/ports/services"
	"github.com/pbk-app/project_bookkeeping_app/internal/dto"
	"github.com/pbk-app/project_bookkeeping_app/internal/middleware"
)

// ledgerHandler handles HTTP requests related to project ledgers.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers routes related to project ledgers.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/projects/:projectID/ledger")
	{
		ledger.POST("", h.bootstrapLedger)
		ledger.GET("/cash", h.getCash)
		ledger.GET("/deficit", h.getDeficit)
		ledger.PUT("/deficit", h.setDeficit)
		ledger.POST("/transactions", h.recordTransactions)
	}
}

// bootstrapLedger godoc
// @Summary Bootstrap a project ledger
// @Description Ensures the project's ledger document exists with an empty schema; idempotent
// @Tags ledger
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Success 204
// @Failure 500 {object} map[string]string "Failed to bootstrap ledger"
// @Router /projects/{projectID}/ledger [post]
func (h *ledgerHandler) bootstrapLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	if err := h.ledgerService.Bootstrap(c.Request.Context(), projectID); err != nil {
		logger.Error("Failed to bootstrap ledger", slog.String("project_id", projectID), slog.String("error", err.Error()))
		respondLedgerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// getCash godoc
// @Summary Get project cash
// @Description Returns what is left in project cash, computed from the balance table
// @Tags ledger
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Success 200 {object} dto.CashResponse
// @Failure 500 {object} map[string]string "Failed to compute cash"
// @Router /projects/{projectID}/ledger/cash [get]
func (h *ledgerHandler) getCash(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	cash, err := h.ledgerService.Cash(c.Request.Context(), projectID)
	if err != nil {
		logger.Error("Failed to compute cash", slog.String("project_id", projectID), slog.String("error", err.Error()))
		respondLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CashResponse{Cash: cash})
}

// getDeficit godoc
// @Summary Get the deficit flag
// @Description Reports whether the project is currently in funding deficit
// @Tags ledger
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Success 200 {object} dto.DeficitResponse
// @Failure 500 {object} map[string]string "Failed to read deficit flag"
// @Router /projects/{projectID}/ledger/deficit [get]
func (h *ledgerHandler) getDeficit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	deficit, err := h.ledgerService.Deficit(c.Request.Context(), projectID)
	if err != nil {
		logger.Error("Failed to read deficit flag", slog.String("project_id", projectID), slog.String("error", err.Error()))
		respondLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeficitResponse{Deficit: deficit})
}

// setDeficit godoc
// @Summary Set the deficit flag
// @Description Sets or clears the project deficit flag; setting the current state again is a no-op
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Param   deficit body dto.SetDeficitRequest true "Deficit flag"
// @Success 200 {object} dto.DeficitResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 500 {object} map[string]string "Failed to update deficit flag"
// @Router /projects/{projectID}/ledger/deficit [put]
func (h *ledgerHandler) setDeficit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	var req dto.SetDeficitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for setDeficit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.ledgerService.SetDeficit(c.Request.Context(), projectID, *req.Deficit); err != nil {
		logger.Error("Failed to update deficit flag", slog.String("project_id", projectID), slog.String("error", err.Error()))
		respondLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeficitResponse{Deficit: *req.Deficit})
}

// recordTransactions godoc
// @Summary Record a batch of transactions
// @Description Appends the transactions to the project ledger as one atomic batch and returns the head identifier
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Param   transactions body dto.RecordTransactionsRequest true "Transactions to record"
// @Success 201 {object} dto.RecordTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to record transactions"
// @Router /projects/{projectID}/ledger/transactions [post]
func (h *ledgerHandler) recordTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	var req dto.RecordTransactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	firstID, err := h.ledgerService.Add(c.Request.Context(), projectID, dto.ToTransactions(req.Transactions)...)
	if err != nil {
		logger.Error("Failed to record transactions", slog.String("project_id", projectID), slog.String("error", err.Error()))
		respondLedgerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.RecordTransactionsResponse{FirstID: firstID})
}

// respondLedgerError maps service errors onto HTTP statuses.
func respondLedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		// Storage I/O, corruption and invariant faults all surface as 500;
		// details stay in the server log.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
