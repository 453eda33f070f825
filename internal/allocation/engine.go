// Package allocation computes per-county distribution amounts for a budget
// total under one of three closed-form methods. The engine is pure: it never
// touches the store, and identical inputs always produce identical results.
package allocation

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "mgao/internal/errors"
)

// CountySnapshot is the engine's read-only view of a county. Callers pass
// snapshots in identifier-ascending order; the engine preserves that order
// in its results.
type CountySnapshot struct {
	ID             string
	Name           string
	Population     int64
	EconomicOutput decimal.Decimal
	ProjectScore   int
}

// GDPPerCapita returns economic output divided by population.
func (c CountySnapshot) GDPPerCapita() (decimal.Decimal, error) {
	if c.Population <= 0 {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrZeroPopulation,
			fmt.Sprintf("county %q has no positive population", c.Name))
	}
	return c.EconomicOutput.Div(decimal.NewFromInt(c.Population)), nil
}

// Share is the amount one county receives from a total.
type Share struct {
	CountyID   string
	CountyName string
	Amount     decimal.Decimal
	Percentage decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// Allocate divides total across counties using the given method and returns
// one share per county, in input order. The shares always sum to total
// exactly: the last county absorbs the division remainder.
func Allocate(total decimal.Decimal, counties []CountySnapshot, method Method) ([]Share, error) {
	if len(counties) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "cannot allocate a budget to zero counties")
	}
	if !total.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "budget total must be greater than zero")
	}

	var (
		weights []decimal.Decimal
		err     error
	)
	switch method {
	case MethodEqual:
		weights = equalWeights(len(counties))
	case MethodGDPPerCapita:
		weights, err = inverseGDPWeights(counties)
	case MethodProjectScore:
		weights, err = projectScoreWeights(counties)
	default:
		return nil, apperrors.WithMessage(apperrors.ErrValidation,
			fmt.Sprintf("unknown allocation method %q", method))
	}
	if err != nil {
		return nil, err
	}

	return distribute(total, counties, weights)
}

// equalWeights gives every county the same weight.
func equalWeights(n int) []decimal.Decimal {
	weights := make([]decimal.Decimal, n)
	one := decimal.NewFromInt(1)
	for i := range weights {
		weights[i] = one
	}
	return weights
}

// inverseGDPWeights computes weight = maxGDP - gdp + minGDP for each county.
// Counties below the average GDP per capita end up above the average weight,
// so the poorest county always gets the largest share. When every county has
// the same GDP per capita, all weights are equal and the method degenerates
// to an even split.
func inverseGDPWeights(counties []CountySnapshot) ([]decimal.Decimal, error) {
	gdps := make([]decimal.Decimal, len(counties))
	for i, county := range counties {
		gdp, err := county.GDPPerCapita()
		if err != nil {
			return nil, err
		}
		gdps[i] = gdp
	}

	minGDP, maxGDP := gdps[0], gdps[0]
	for _, gdp := range gdps[1:] {
		if gdp.LessThan(minGDP) {
			minGDP = gdp
		}
		if gdp.GreaterThan(maxGDP) {
			maxGDP = gdp
		}
	}

	weights := make([]decimal.Decimal, len(gdps))
	for i, gdp := range gdps {
		weights[i] = maxGDP.Sub(gdp).Add(minGDP)
	}
	return weights, nil
}

// projectScoreWeights weights each county by its project need score.
// Scores are 1-10 at the store boundary, but the engine accepts arbitrary
// snapshots and so revalidates the degenerate all-zero case itself.
func projectScoreWeights(counties []CountySnapshot) ([]decimal.Decimal, error) {
	weights := make([]decimal.Decimal, len(counties))
	sum := decimal.Zero
	for i, county := range counties {
		weights[i] = decimal.NewFromInt(int64(county.ProjectScore))
		sum = sum.Add(weights[i])
	}
	if !sum.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "total project score cannot be zero")
	}
	return weights, nil
}

// distribute turns weights into amounts: amount = weight / sum(weights) * total.
// Every county except the last gets its proportional amount; the last gets
// whatever remains, which makes the sum invariant exact instead of merely
// within tolerance.
func distribute(total decimal.Decimal, counties []CountySnapshot, weights []decimal.Decimal) ([]Share, error) {
	sumWeights := decimal.Zero
	for _, w := range weights {
		sumWeights = sumWeights.Add(w)
	}
	if sumWeights.IsZero() {
		return nil, apperrors.ErrZeroTotalWeight
	}

	shares := make([]Share, len(counties))
	remaining := total
	for i, county := range counties {
		var amount decimal.Decimal
		if i == len(counties)-1 {
			amount = remaining
		} else {
			amount = total.Mul(weights[i]).Div(sumWeights)
			remaining = remaining.Sub(amount)
		}
		shares[i] = Share{
			CountyID:   county.ID,
			CountyName: county.Name,
			Amount:     amount,
			Percentage: amount.Div(total).Mul(hundred),
		}
	}
	return shares, nil
}
