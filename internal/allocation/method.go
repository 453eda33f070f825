package allocation

import (
	"fmt"

	apperrors "mgao/internal/errors"
)

// Method selects the formula used to divide a budget's total across counties.
// The set is closed; dispatch happens in Allocate, not by string lookup.
type Method string

const (
	// MethodEqual splits the total evenly across all counties.
	MethodEqual Method = "equal"

	// MethodGDPPerCapita weights counties inversely by GDP per capita, so
	// poorer counties receive larger shares.
	MethodGDPPerCapita Method = "gdp_per_capita"

	// MethodProjectScore weights counties proportionally by their 1-10
	// project need score.
	MethodProjectScore Method = "project_score"
)

// Methods returns all methods in their fixed reporting order.
func Methods() []Method {
	return []Method{MethodEqual, MethodGDPPerCapita, MethodProjectScore}
}

// Valid reports whether m is one of the known methods.
func (m Method) Valid() bool {
	switch m {
	case MethodEqual, MethodGDPPerCapita, MethodProjectScore:
		return true
	}
	return false
}

// ParseMethod converts a user-supplied string into a Method.
func ParseMethod(s string) (Method, error) {
	m := Method(s)
	if !m.Valid() {
		return "", apperrors.WithMessage(apperrors.ErrValidation,
			fmt.Sprintf("unknown allocation method %q (expected equal, gdp_per_capita or project_score)", s))
	}
	return m, nil
}
