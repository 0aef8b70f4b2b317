package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// percentageTolerance allows for fractional-cent percentage entry like
// 33.33/33.33/33.33; the share computation absorbs the residue.
var percentageTolerance = decimal.RequireFromString("0.05")

// splitPercentagesValid checks that the percentages of a CUSTOM split sum to
// 100 within tolerance. Applied to the Shares field as "splitpercentages".
func splitPercentagesValid(fl validator.FieldLevel) bool {
	shares, ok := fl.Field().Interface().([]ExpenseShareInput)
	if !ok || len(shares) == 0 {
		return true // omitempty handles absence; EVEN splits have no shares
	}
	sum := decimal.Zero
	for _, share := range shares {
		if share.Percentage.IsNegative() {
			return false
		}
		sum = sum.Add(share.Percentage)
	}
	return sum.Sub(decimal.NewFromInt(100)).Abs().LessThanOrEqual(percentageTolerance)
}

// RegisterCustomValidators installs the application's custom binding rules on
// gin's validator engine. Called once at startup.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("splitpercentages", splitPercentagesValid)
	}
}
