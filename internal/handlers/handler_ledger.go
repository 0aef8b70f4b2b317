package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/splitkit/split_ledger_app/internal/apperrors"
	portssvc "github.com/splitkit/split_ledger_app/internal/core/ports/services"
	"github.com/splitkit/split_ledger_app/internal/dto"
	"github.com/splitkit/split_ledger_app/internal/middleware"
)

// ledgerHandler serves the derived views over a group's history: net
// balances, pairwise debts and the simplified settlement plan.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerGroupLedgerRoutes registers the ledger views on a /groups/:groupID group.
func registerGroupLedgerRoutes(group *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	group.GET("/balances", h.getGroupBalances)
	group.GET("/debts", h.getGroupDebts)
	group.GET("/debts/simplify", h.simplifyGroupDebts)
}

// registerLedgerRoutes registers ledger routes that are not tied to a group.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	rg.POST("/debts/simplify", h.simplifyDebtList)
}

// getGroupBalances godoc
// @Summary Get group balances
// @Description Computes each member's signed net balance from all expenses
// @Description and confirmed settlements. Positive means owed money.
// @Tags ledger
// @Produce json
// @Param groupID path string true "Group ID"
// @Success 200 {object} dto.GroupBalancesResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{groupID}/balances [get]
func (h *ledgerHandler) getGroupBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("groupID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	balances, err := h.ledgerService.GetGroupBalances(c.Request.Context(), groupID, requestingUserID)
	if err != nil {
		respondLedgerError(c, logger, err, "Failed to compute balances")
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupBalancesResponse(groupID, balances))
}

// getGroupDebts godoc
// @Summary Get group debts
// @Description Materializes the pairwise debts implied by the group's net
// @Description balances.
// @Tags ledger
// @Produce json
// @Param groupID path string true "Group ID"
// @Success 200 {object} dto.GroupDebtsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{groupID}/debts [get]
func (h *ledgerHandler) getGroupDebts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("groupID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	debts, err := h.ledgerService.GetGroupDebts(c.Request.Context(), groupID, requestingUserID)
	if err != nil {
		respondLedgerError(c, logger, err, "Failed to compute debts")
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupDebtsResponse(groupID, debts))
}

// simplifyGroupDebts godoc
// @Summary Simplify group debts
// @Description Reduces the group's debts to a smaller set of payments that
// @Description settles everyone, with a summary of the savings.
// @Tags ledger
// @Produce json
// @Param groupID path string true "Group ID"
// @Success 200 {object} dto.SimplifyDebtsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{groupID}/debts/simplify [get]
func (h *ledgerHandler) simplifyGroupDebts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("groupID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txns, summary, err := h.ledgerService.SimplifyGroupDebts(c.Request.Context(), groupID, requestingUserID)
	if err != nil {
		respondLedgerError(c, logger, err, "Failed to simplify debts")
		return
	}

	c.JSON(http.StatusOK, dto.ToSimplifyDebtsResponse(txns, summary))
}

// simplifyDebtList godoc
// @Summary Simplify a debt list
// @Description Reduces a caller-supplied debt list without touching any
// @Description stored group, e.g. for what-if analysis.
// @Tags ledger
// @Accept json
// @Produce json
// @Param debts body dto.SimplifyDebtsRequest true "Debts to simplify"
// @Success 200 {object} dto.SimplifyDebtsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts/simplify [post]
func (h *ledgerHandler) simplifyDebtList(c *gin.Context) {
	var req dto.SimplifyDebtsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	debts := dto.ToDomainDebts(req.Debts, time.Now().UTC())
	txns, summary := h.ledgerService.SimplifyDebtList(c.Request.Context(), debts)

	c.JSON(http.StatusOK, dto.ToSimplifyDebtsResponse(txns, summary))
}

func respondLedgerError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "You do not have access to this group"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Group not found"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}
