package models

import "github.com/shopspring/decimal"

// County represents an administrative unit competing for budget funds.
// Names are unique; population must be positive and the project score is an
// integer between 1 and 10. Both constraints are enforced at the service
// boundary before a row is written.
type County struct {
	Base
	Name           string          `gorm:"not null;uniqueIndex:idx_counties_name,where:deleted_at IS NULL" json:"name"`
	Population     int64           `gorm:"not null" json:"population"`
	EconomicOutput decimal.Decimal `gorm:"type:DECIMAL(20,8);not null" json:"economic_output"`
	ProjectScore   int             `gorm:"not null" json:"project_score"`

	// Relationships
	Allocations []Allocation `gorm:"foreignKey:CountyID" json:"allocations,omitempty"`
}

// GDPPerCapita returns economic output divided by population. Stored
// counties always have a positive population; the zero guard protects
// callers holding unstored values.
func (c *County) GDPPerCapita() decimal.Decimal {
	if c.Population <= 0 {
		return decimal.Zero
	}
	return c.EconomicOutput.Div(decimal.NewFromInt(c.Population))
}
