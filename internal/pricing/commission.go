// Package pricing derives the money fields that summarise a quote or
// booking. All arithmetic runs on fixed-precision decimals; summing
// dozens of sector rows in floating point would drift.
package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Line is the cost/commission pair of one sector row. Missing values
// default to zero (decimal.Decimal's zero value).
type Line struct {
	Cost       decimal.Decimal
	Commission decimal.Decimal
}

// Summary holds the derived aggregates for a phase entity.
type Summary struct {
	OverallCommission decimal.Decimal
	OverallCost       decimal.Decimal
}

// Inputs are the phase entity's own money scalars that feed the
// aggregation alongside the sector lines.
type Inputs struct {
	PackageCommission decimal.Decimal
	Discount          decimal.Decimal
	ServiceCharge     decimal.Decimal
	SalesPrice        decimal.Decimal
}

// Overall computes:
//
//	overall_commission = sum(sector commissions) + package commission
//	overall_cost       = sum(sector costs) - discount + service charge + sales price
func Overall(lines []Line, in Inputs) Summary {
	commission := in.PackageCommission
	cost := decimal.Zero
	for _, l := range lines {
		commission = commission.Add(l.Commission)
		cost = cost.Add(l.Cost)
	}
	cost = cost.Sub(in.Discount).Add(in.ServiceCharge).Add(in.SalesPrice)
	return Summary{
		OverallCommission: commission.Round(2),
		OverallCost:       cost.Round(2),
	}
}

// ReferralSplit divides the overall commission between the referrer and
// the agency. potentialPct is a percentage (0-100). Both figures are
// derived on read; neither is ever the commission of record.
func ReferralSplit(overall, potentialPct decimal.Decimal) (referrer, final decimal.Decimal) {
	referrer = overall.Mul(potentialPct).Div(hundred).Round(2)
	final = overall.Sub(referrer)
	return referrer, final
}

// AttributedOperator resolves the tour operator persisted on a sector
// row. Rows included in the package are forced onto the package's main
// supplier, overriding whatever the caller sent; standalone rows keep
// the caller's operator verbatim. Applied at write time: it changes
// what is stored, not just what is displayed.
func AttributedOperator(isIncludedInPackage bool, rowOperator, mainOperator *int) *int {
	if isIncludedInPackage {
		return mainOperator
	}
	return rowOperator
}
