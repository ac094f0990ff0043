package utils

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var centsPerUnit = decimal.NewFromInt(100)

// TotalInCents returns quantity × unitPrice in minor currency units, rounded
// half away from zero to the nearest cent.
func TotalInCents(unitPrice float64, quantity int) (int64, error) {
	if quantity <= 0 {
		return 0, errors.Errorf("quantity must be positive, got %d", quantity)
	}
	if unitPrice < 0 {
		return 0, errors.Errorf("price must not be negative, got %v", unitPrice)
	}
	total := decimal.NewFromFloat(unitPrice).
		Mul(decimal.NewFromInt(int64(quantity))).
		Mul(centsPerUnit).
		Round(0)
	return total.IntPart(), nil
}
