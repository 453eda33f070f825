package listing

import (
	"fmt"

	apperrors "mgao/internal/errors"
)

// SortKey names a county attribute counties can be ordered by.
type SortKey string

const (
	SortByName         SortKey = "name"
	SortByPopulation   SortKey = "population"
	SortByGDPPerCapita SortKey = "gdp_per_capita"
	SortByProjectScore SortKey = "project_score"
)

// SortKeys returns all recognized county sort keys.
func SortKeys() []SortKey {
	return []SortKey{SortByName, SortByPopulation, SortByGDPPerCapita, SortByProjectScore}
}

// Valid reports whether k is a recognized sort key.
func (k SortKey) Valid() bool {
	switch k {
	case SortByName, SortByPopulation, SortByGDPPerCapita, SortByProjectScore:
		return true
	}
	return false
}

// ParseSortKey converts a user-supplied string into a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(s)
	if !k.Valid() {
		return "", apperrors.WithMessage(apperrors.ErrValidation,
			fmt.Sprintf("unknown sort key %q (expected name, population, gdp_per_capita or project_score)", s))
	}
	return k, nil
}

// Sort describes a requested county ordering. The zero value means
// creation order (identifier ascending).
type Sort struct {
	Key  SortKey
	Desc bool
}
