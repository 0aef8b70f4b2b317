package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitkit/split_ledger_app/internal/core/domain"
)

// ExpenseShareInput defines one participant's part of a CUSTOM split.
type ExpenseShareInput struct {
	UserID     string          `json:"userID" binding:"required"`
	Percentage decimal.Decimal `json:"percentage"`
}

// CreateExpenseRequest defines the data for creating (or replacing) an expense.
// For an EVEN split only Participants is used; for a CUSTOM split each entry
// in Shares carries a percentage and the percentages must sum to 100 within
// tolerance (validated with the "splitpercentages" rule).
type CreateExpenseRequest struct {
	Description  string              `json:"description" binding:"required"`
	Amount       decimal.Decimal     `json:"amount" binding:"required"`
	PaidBy       string              `json:"paidBy" binding:"required"`
	SplitType    string              `json:"splitType" binding:"required,oneof=EVEN CUSTOM"`
	OccurredAt   time.Time           `json:"occurredAt" binding:"required"`
	Participants []string            `json:"participants" binding:"omitempty,dive,required"`
	Shares       []ExpenseShareInput `json:"shares" binding:"omitempty,splitpercentages,dive"`
}

// ListExpensesParams defines query parameters for listing group expenses.
type ListExpensesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ExpenseShareResponse defines the data returned for one expense share.
type ExpenseShareResponse struct {
	UserID     string           `json:"userID"`
	Amount     decimal.Decimal  `json:"amount"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID   string                 `json:"expenseID"`
	GroupID     string                 `json:"groupID"`
	Description string                 `json:"description"`
	Amount      decimal.Decimal        `json:"amount"`
	PaidBy      string                 `json:"paidBy"`
	SplitType   string                 `json:"splitType"`
	OccurredAt  time.Time              `json:"occurredAt"`
	CreatedBy   string                 `json:"createdBy"`
	Shares      []ExpenseShareResponse `json:"shares,omitempty"`
}

// ListExpensesResponse wraps a page of expenses with the next-page token.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToExpenseResponse converts a domain.Expense and its shares to a DTO.
func ToExpenseResponse(e *domain.Expense, shares []domain.ExpenseShare) ExpenseResponse {
	resp := ExpenseResponse{
		ExpenseID:   e.ExpenseID,
		GroupID:     e.GroupID,
		Description: e.Description,
		Amount:      e.Amount,
		PaidBy:      e.PaidBy,
		SplitType:   string(e.SplitType),
		OccurredAt:  e.OccurredAt,
		CreatedBy:   e.CreatedBy,
	}
	for _, share := range shares {
		resp.Shares = append(resp.Shares, ExpenseShareResponse{
			UserID:     share.UserID,
			Amount:     share.Amount,
			Percentage: share.Percentage,
		})
	}
	return resp
}

// ToExpenseResponses converts a slice of domain.Expense (without shares).
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		responses[i] = ToExpenseResponse(&e, nil)
	}
	return responses
}
