package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type sharesHolder struct {
	Shares []ExpenseShareInput `validate:"splitpercentages"`
}

func newValidatorUnderTest(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	err := v.RegisterValidation("splitpercentages", splitPercentagesValid)
	assert.NoError(t, err)
	return v
}

func pct(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSplitPercentages_ExactHundredPasses(t *testing.T) {
	v := newValidatorUnderTest(t)
	holder := sharesHolder{Shares: []ExpenseShareInput{
		{UserID: "u1", Percentage: pct("75")},
		{UserID: "u2", Percentage: pct("25")},
	}}
	assert.NoError(t, v.Struct(holder))
}

func TestSplitPercentages_WithinTolerancePasses(t *testing.T) {
	v := newValidatorUnderTest(t)
	holder := sharesHolder{Shares: []ExpenseShareInput{
		{UserID: "u1", Percentage: pct("33.33")},
		{UserID: "u2", Percentage: pct("33.33")},
		{UserID: "u3", Percentage: pct("33.33")},
	}}
	assert.NoError(t, v.Struct(holder))
}

func TestSplitPercentages_OffByTooMuchFails(t *testing.T) {
	v := newValidatorUnderTest(t)
	holder := sharesHolder{Shares: []ExpenseShareInput{
		{UserID: "u1", Percentage: pct("50")},
		{UserID: "u2", Percentage: pct("40")},
	}}
	assert.Error(t, v.Struct(holder))
}

func TestSplitPercentages_NegativePercentageFails(t *testing.T) {
	v := newValidatorUnderTest(t)
	holder := sharesHolder{Shares: []ExpenseShareInput{
		{UserID: "u1", Percentage: pct("110")},
		{UserID: "u2", Percentage: pct("-10")},
	}}
	assert.Error(t, v.Struct(holder))
}

func TestSplitPercentages_EmptySharesPass(t *testing.T) {
	v := newValidatorUnderTest(t)
	assert.NoError(t, v.Struct(sharesHolder{}))
}
