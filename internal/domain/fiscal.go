package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FiscalPolicy computes the monetary value attached to a donation for the
// donor's tax reporting. Two strategies exist: the plain retail value and the
// French 60% tax-reduction figure.
type FiscalPolicy struct {
	Name string
	rate decimal.Decimal
}

var (
	FullValue  = FiscalPolicy{Name: "full-value", rate: decimal.NewFromInt(1)}
	TaxBenefit = FiscalPolicy{Name: "tax-benefit", rate: decimal.RequireFromString("0.60")}
)

// FiscalPolicyByName resolves a policy from its config name.
func FiscalPolicyByName(name string) (FiscalPolicy, bool) {
	switch name {
	case FullValue.Name:
		return FullValue, true
	case TaxBenefit.Name:
		return TaxBenefit, true
	}
	return FiscalPolicy{}, false
}

// Value returns unitPrice × quantity × rate rounded to two decimals, rendered
// with a fixed two-digit fraction ("38.40", not "38.4").
func (p FiscalPolicy) Value(unitPrice string, quantity int) (string, error) {
	price, err := decimal.NewFromString(unitPrice)
	if err != nil {
		return "", fmt.Errorf("bad unit price %q: %w", unitPrice, err)
	}
	v := price.Mul(decimal.NewFromInt(int64(quantity))).Mul(p.rate)
	return v.Round(2).StringFixed(2), nil
}
