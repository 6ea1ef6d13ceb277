package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/bolsas_app/internal/core/domain"
	portssvc "github.com/SscSPs/bolsas_app/internal/core/ports/services"
	"github.com/SscSPs/bolsas_app/internal/dto"
	"github.com/SscSPs/bolsas_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type recurringHandler struct {
	recurringService portssvc.RecurringSvcFacade
}

func registerRecurringRoutes(rg *gin.RouterGroup, recurringService portssvc.RecurringSvcFacade) {
	h := &recurringHandler{recurringService: recurringService}

	recurring := rg.Group("/recurring")
	{
		recurring.POST("", h.createRecurring)
		recurring.GET("", h.listRecurring)
		recurring.POST("/generate", h.generateRecurring)
		recurring.DELETE("/:id", h.deleteRecurring)
	}
}

// createRecurring godoc
// @Summary Create a recurring transaction
// @Description Creates a monthly template that is posted on its day of the month. Days past the end of a month fall on its last day.
// @Tags recurring
// @Accept  json
// @Produce  json
// @Param   recurring body dto.CreateRecurringRequest true "Template details"
// @Success 201 {object} dto.RecurringResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to create recurring transaction"
// @Security BearerAuth
// @Router /recurring [post]
func (h *recurringHandler) createRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRecurring", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	rec, err := h.recurringService.CreateRecurring(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create recurring transaction")
		return
	}
	c.JSON(http.StatusCreated, dto.ToRecurringResponse(rec))
}

// listRecurring godoc
// @Summary List recurring transactions
// @Tags recurring
// @Produce  json
// @Success 200 {array} dto.RecurringResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list recurring transactions"
// @Security BearerAuth
// @Router /recurring [get]
func (h *recurringHandler) listRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	recs, err := h.recurringService.ListRecurring(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list recurring transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToRecurringResponses(recs))
}

// generateRecurring godoc
// @Summary Generate recurring transactions for a month
// @Description Posts every active template not yet generated for the month. Running it again for the same month posts nothing.
// @Tags recurring
// @Produce  json
// @Param   month query string true "Month (YYYY-MM)"
// @Success 200 {object} dto.GenerateRecurringResponse
// @Failure 400 {object} map[string]string "Invalid month"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate recurring transactions"
// @Security BearerAuth
// @Router /recurring/generate [post]
func (h *recurringHandler) generateRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var params dto.BudgetParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	month, err := domain.ParseMonthYear(params.Month)
	if err != nil {
		respondError(c, logger, err, "Invalid month")
		return
	}

	rows, err := h.recurringService.GenerateForMonth(c.Request.Context(), userID, month)
	if err != nil {
		respondError(c, logger, err, "Failed to generate recurring transactions")
		return
	}

	logger.Info("Recurring transactions generated", slog.String("month", month.String()), slog.Int("row_count", len(rows)))
	c.JSON(http.StatusOK, dto.GenerateRecurringResponse{
		Month:        month.String(),
		Transactions: dto.ToTransactionResponses(rows),
	})
}

// deleteRecurring godoc
// @Summary Delete a recurring transaction
// @Description Deletes the template. Transactions it already generated are kept.
// @Tags recurring
// @Param   id path string true "Recurring transaction ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Recurring transaction not found"
// @Failure 500 {object} map[string]string "Failed to delete recurring transaction"
// @Security BearerAuth
// @Router /recurring/{id} [delete]
func (h *recurringHandler) deleteRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.recurringService.DeleteRecurring(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to delete recurring transaction")
		return
	}
	c.Status(http.StatusNoContent)
}
