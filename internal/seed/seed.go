// Package seed loads the sample county data set used by `mgao init`.
package seed

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "mgao/internal/errors"
	"mgao/internal/models"
)

// SampleCounties returns the built-in demo county set.
func SampleCounties() []models.County {
	return []models.County{
		{Name: "Nairobi", Population: 4397073, EconomicOutput: decimal.NewFromInt(2500000000), ProjectScore: 9},
		{Name: "Mombasa", Population: 1208333, EconomicOutput: decimal.NewFromInt(800000000), ProjectScore: 8},
		{Name: "Kiambu", Population: 2417735, EconomicOutput: decimal.NewFromInt(600000000), ProjectScore: 7},
		{Name: "Nakuru", Population: 2162202, EconomicOutput: decimal.NewFromInt(450000000), ProjectScore: 6},
		{Name: "Machakos", Population: 1421932, EconomicOutput: decimal.NewFromInt(300000000), ProjectScore: 5},
		{Name: "Kajiado", Population: 1117840, EconomicOutput: decimal.NewFromInt(200000000), ProjectScore: 6},
	}
}

// Counties inserts the sample county set and returns how many rows were
// written. It is a no-op when any county already exists, so running `init`
// twice never duplicates data.
func Counties(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&models.County{}).Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	if count > 0 {
		return 0, nil
	}

	counties := SampleCounties()
	if err := db.Create(&counties).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return len(counties), nil
}
