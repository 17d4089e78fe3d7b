package utils

import (
	"github.com/KromaEnergia/api-crm/internal/apperrors"
	"github.com/shopspring/decimal"
)

// maxAmount é o maior valor que cabe em numeric(10,2).
var maxAmount = decimal.RequireFromString("99999999.99")

// Amount valida um valor monetário e arredonda para centavos.
func Amount(field string, d decimal.Decimal) (decimal.Decimal, error) {
	d = d.Round(2)
	if d.IsNegative() {
		return d, apperrors.ValidationFields("Invalid fields", map[string]string{field: "gte"})
	}
	if d.GreaterThan(maxAmount) {
		return d, apperrors.ValidationFields("Invalid fields", map[string]string{field: "lte"})
	}
	return d, nil
}
