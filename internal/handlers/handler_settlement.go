package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/splitkit/split_ledger_app/internal/apperrors"
	portssvc "github.com/splitkit/split_ledger_app/internal/core/ports/services"
	"github.com/splitkit/split_ledger_app/internal/dto"
	"github.com/splitkit/split_ledger_app/internal/middleware"
)

// settlementHandler handles HTTP requests for settlements within a group.
type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
}

func newSettlementHandler(ss portssvc.SettlementSvcFacade) *settlementHandler {
	return &settlementHandler{settlementService: ss}
}

// registerSettlementRoutes registers settlement routes on a /groups/:groupID group.
func registerSettlementRoutes(group *gin.RouterGroup, settlementService portssvc.SettlementSvcFacade) {
	h := newSettlementHandler(settlementService)

	settlements := group.Group("/settlements")
	{
		settlements.POST("", h.recordSettlement)
		settlements.GET("", h.listSettlements)
		settlements.POST("/:settlementID/confirm", h.confirmSettlement)
		settlements.POST("/:settlementID/cancel", h.cancelSettlement)
	}
}

// recordSettlement godoc
// @Summary Record a settlement
// @Description Records a pending payment from one member to another.
// @Tags settlements
// @Accept json
// @Produce json
// @Param groupID path string true "Group ID"
// @Param settlement body dto.RecordSettlementRequest true "Settlement details"
// @Success 201 {object} dto.SettlementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{groupID}/settlements [post]
func (h *settlementHandler) recordSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("groupID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.RecordSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	settlement, err := h.settlementService.RecordSettlement(c.Request.Context(), groupID, req, requestingUserID)
	if err != nil {
		respondSettlementError(c, logger, err, "Failed to record settlement")
		return
	}

	c.JSON(http.StatusCreated, dto.ToSettlementResponse(settlement))
}

// listSettlements godoc
// @Summary List group settlements
// @Tags settlements
// @Produce json
// @Param groupID path string true "Group ID"
// @Success 200 {object} dto.ListSettlementsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{groupID}/settlements [get]
func (h *settlementHandler) listSettlements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("groupID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	settlements, err := h.settlementService.ListSettlements(c.Request.Context(), groupID, requestingUserID)
	if err != nil {
		respondSettlementError(c, logger, err, "Failed to list settlements")
		return
	}

	c.JSON(http.StatusOK, dto.ToListSettlementsResponse(settlements))
}

// confirmSettlement godoc
// @Summary Confirm a settlement
// @Description Transitions a pending settlement to confirmed, applying it to
// @Description group balances. Only the payee or a group admin may confirm.
// @Tags settlements
// @Produce json
// @Param groupID path string true "Group ID"
// @Param settlementID path string true "Settlement ID"
// @Success 200 {object} dto.SettlementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{groupID}/settlements/{settlementID}/confirm [post]
func (h *settlementHandler) confirmSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("groupID")
	settlementID := c.Param("settlementID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	settlement, err := h.settlementService.ConfirmSettlement(c.Request.Context(), groupID, settlementID, requestingUserID)
	if err != nil {
		respondSettlementError(c, logger, err, "Failed to confirm settlement")
		return
	}

	c.JSON(http.StatusOK, dto.ToSettlementResponse(settlement))
}

// cancelSettlement godoc
// @Summary Cancel a settlement
// @Description Transitions a pending settlement to cancelled. The payer,
// @Description payee, recorder or a group admin may cancel.
// @Tags settlements
// @Produce json
// @Param groupID path string true "Group ID"
// @Param settlementID path string true "Settlement ID"
// @Success 200 {object} dto.SettlementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{groupID}/settlements/{settlementID}/cancel [post]
func (h *settlementHandler) cancelSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("groupID")
	settlementID := c.Param("settlementID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	settlement, err := h.settlementService.CancelSettlement(c.Request.Context(), groupID, settlementID, requestingUserID)
	if err != nil {
		respondSettlementError(c, logger, err, "Failed to cancel settlement")
		return
	}

	c.JSON(http.StatusOK, dto.ToSettlementResponse(settlement))
}

func respondSettlementError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "You do not have permission for this action"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Settlement not found"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}
