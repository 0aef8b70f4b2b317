package mapping

import (
	"github.com/splitkit/split_ledger_app/internal/core/domain"
	"github.com/splitkit/split_ledger_app/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:   d.ExpenseID,
		GroupID:     d.GroupID,
		Description: d.Description,
		Amount:      d.Amount,
		PaidBy:      d.PaidBy,
		SplitType:   string(d.SplitType),
		OccurredAt:  d.OccurredAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:   m.ExpenseID,
		GroupID:     m.GroupID,
		Description: m.Description,
		Amount:      m.Amount,
		PaidBy:      m.PaidBy,
		SplitType:   domain.SplitType(m.SplitType),
		OccurredAt:  m.OccurredAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseSlice converts a slice of model Expenses to domain Expenses
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}

// ToModelExpenseShare converts a domain ExpenseShare to its model form
func ToModelExpenseShare(d domain.ExpenseShare) models.ExpenseShare {
	return models.ExpenseShare{
		ShareID:     d.ShareID,
		ExpenseID:   d.ExpenseID,
		UserID:      d.UserID,
		Amount:      d.Amount,
		Percentage:  d.Percentage,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpenseShare converts a model ExpenseShare to its domain form
func ToDomainExpenseShare(m models.ExpenseShare) domain.ExpenseShare {
	return domain.ExpenseShare{
		ShareID:     m.ShareID,
		ExpenseID:   m.ExpenseID,
		UserID:      m.UserID,
		Amount:      m.Amount,
		Percentage:  m.Percentage,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseShareSlice converts model ExpenseShares to domain ExpenseShares
func ToDomainExpenseShareSlice(ms []models.ExpenseShare) []domain.ExpenseShare {
	ds := make([]domain.ExpenseShare, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpenseShare(m)
	}
	return ds
}
