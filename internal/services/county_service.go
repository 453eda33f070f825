package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mgao/internal/allocation"
	apperrors "mgao/internal/errors"
	"mgao/internal/listing"
	"mgao/internal/models"
	"mgao/internal/validator"
)

// CountyInput holds all values required to create a new county.
type CountyInput struct {
	Name           string `validate:"required,max=100"`
	Population     int64  `validate:"gt=0"`
	EconomicOutput decimal.Decimal
	ProjectScore   int `validate:"gte=1,lte=10"`
}

// CountyUpdate holds optional new values for an existing county. Nil fields
// are left unchanged.
type CountyUpdate struct {
	Name           *string
	Population     *int64
	EconomicOutput *decimal.Decimal
	ProjectScore   *int
}

// CountyAllocationRow is one allocation a county received, with its budget.
type CountyAllocationRow struct {
	BudgetName string
	Method     allocation.Method
	Amount     decimal.Decimal
	CreatedAt  time.Time
}

// CountyAllocationSummary aggregates a county's allocations across budgets.
type CountyAllocationSummary struct {
	CountyID    string
	CountyName  string
	Count       int64
	TotalAmount decimal.Decimal
	Rows        []CountyAllocationRow
}

// countyService handles county store operations.
type countyService struct {
	db *gorm.DB
}

// NewCountyService creates a new CountyServicer.
func NewCountyService(db *gorm.DB) CountyServicer {
	return &countyService{db: db}
}

// CreateCounty validates the input and writes a new county row.
func (s *countyService) CreateCounty(input CountyInput) (*models.County, error) {
	input.Name = strings.TrimSpace(input.Name)

	if err := validator.Get().Struct(input); err != nil {
		return nil, validationError(err)
	}
	if input.EconomicOutput.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "economic output cannot be negative")
	}

	// County names are unique regardless of case.
	var count int64
	if err := s.db.Model(&models.County{}).
		Where("LOWER(name) = LOWER(?)", input.Name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	if count > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrDuplicateCountyName,
			fmt.Sprintf("county %q already exists", input.Name))
	}

	county := &models.County{
		Name:           input.Name,
		Population:     input.Population,
		EconomicOutput: input.EconomicOutput,
		ProjectScore:   input.ProjectScore,
	}
	if err := s.db.Create(county).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return county, nil
}

// ListCounties returns all counties in the requested order. The zero Sort
// lists in creation order. GDP per capita is a derived column, so all
// ordering happens in memory; county counts are small by design.
func (s *countyService) ListCounties(sortReq listing.Sort) ([]models.County, error) {
	var counties []models.County
	if err := s.db.Order("id ASC").Find(&counties).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	sortCounties(counties, sortReq)
	return counties, nil
}

// GetCountyByID returns a county by its identifier.
func (s *countyService) GetCountyByID(id string) (*models.County, error) {
	var county models.County
	if err := s.db.Where("id = ?", id).First(&county).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCountyNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return &county, nil
}

// FindCountiesByName returns counties whose name contains the given
// substring, case-insensitively.
func (s *countyService) FindCountiesByName(name string) ([]models.County, error) {
	var counties []models.County
	if err := s.db.
		Where("LOWER(name) LIKE LOWER(?)", "%"+strings.TrimSpace(name)+"%").
		Order("id ASC").
		Find(&counties).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return counties, nil
}

// UpdateCounty applies the non-nil fields of update to an existing county.
// The merged result is validated as a whole before anything is written.
func (s *countyService) UpdateCounty(id string, update CountyUpdate) (*models.County, error) {
	county, err := s.GetCountyByID(id)
	if err != nil {
		return nil, err
	}

	merged := CountyInput{
		Name:           county.Name,
		Population:     county.Population,
		EconomicOutput: county.EconomicOutput,
		ProjectScore:   county.ProjectScore,
	}
	if update.Name != nil {
		merged.Name = strings.TrimSpace(*update.Name)
	}
	if update.Population != nil {
		merged.Population = *update.Population
	}
	if update.EconomicOutput != nil {
		merged.EconomicOutput = *update.EconomicOutput
	}
	if update.ProjectScore != nil {
		merged.ProjectScore = *update.ProjectScore
	}

	if err := validator.Get().Struct(merged); err != nil {
		return nil, validationError(err)
	}
	if merged.EconomicOutput.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "economic output cannot be negative")
	}

	if update.Name != nil && !strings.EqualFold(merged.Name, county.Name) {
		var count int64
		if err := s.db.Model(&models.County{}).
			Where("LOWER(name) = LOWER(?) AND id <> ?", merged.Name, id).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternal, err)
		}
		if count > 0 {
			return nil, apperrors.WithMessage(apperrors.ErrDuplicateCountyName,
				fmt.Sprintf("county %q already exists", merged.Name))
		}
	}

	updates := map[string]interface{}{
		"name":            merged.Name,
		"population":      merged.Population,
		"economic_output": merged.EconomicOutput,
		"project_score":   merged.ProjectScore,
	}
	if err := s.db.Model(county).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return county, nil
}

// DeleteCounty removes a county. A county referenced by allocations is
// rejected unless cascade is set, in which case the referencing allocations
// are removed first; both deletes happen in one transaction, so a failure
// leaves the store unchanged.
func (s *countyService) DeleteCounty(id string, cascade bool) error {
	county, err := s.GetCountyByID(id)
	if err != nil {
		return err
	}

	var refs int64
	if err := s.db.Model(&models.Allocation{}).
		Where("county_id = ?", id).
		Count(&refs).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternal, err)
	}
	if refs > 0 && !cascade {
		return apperrors.WithMessage(apperrors.ErrCountyInUse,
			fmt.Sprintf("county %q has %d existing allocation(s); pass cascade to delete them too", county.Name, refs))
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if refs > 0 {
			if err := tx.Where("county_id = ?", id).Delete(&models.Allocation{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(county).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return nil
}

// AllocationSummary aggregates everything a county has ever been allocated,
// across all budgets.
func (s *countyService) AllocationSummary(id string) (*CountyAllocationSummary, error) {
	county, err := s.GetCountyByID(id)
	if err != nil {
		return nil, err
	}

	var allocations []models.Allocation
	if err := s.db.Preload("Budget").
		Where("county_id = ?", id).
		Order("created_at DESC").
		Find(&allocations).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	summary := &CountyAllocationSummary{
		CountyID:    county.ID,
		CountyName:  county.Name,
		Count:       int64(len(allocations)),
		TotalAmount: decimal.Zero,
		Rows:        make([]CountyAllocationRow, 0, len(allocations)),
	}
	for _, alloc := range allocations {
		summary.TotalAmount = summary.TotalAmount.Add(alloc.Amount)
		row := CountyAllocationRow{Amount: alloc.Amount, CreatedAt: alloc.CreatedAt}
		if alloc.Budget != nil {
			row.BudgetName = alloc.Budget.Name
			row.Method = alloc.Budget.Method
		}
		summary.Rows = append(summary.Rows, row)
	}
	return summary, nil
}

// Count returns the number of counties in the store.
func (s *countyService) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&models.County{}).Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return count, nil
}

// sortCounties orders counties by the requested key. Sorting is stable and
// ties always break by identifier ascending, independent of direction.
func sortCounties(counties []models.County, req listing.Sort) {
	if req.Key == "" {
		return
	}
	sort.SliceStable(counties, func(i, j int) bool {
		a, b := &counties[i], &counties[j]
		cmp := compareCounties(a, b, req.Key)
		if cmp == 0 {
			return a.ID < b.ID
		}
		if req.Desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

func compareCounties(a, b *models.County, key listing.SortKey) int {
	switch key {
	case listing.SortByName:
		return strings.Compare(a.Name, b.Name)
	case listing.SortByPopulation:
		switch {
		case a.Population < b.Population:
			return -1
		case a.Population > b.Population:
			return 1
		}
		return 0
	case listing.SortByGDPPerCapita:
		return a.GDPPerCapita().Cmp(b.GDPPerCapita())
	case listing.SortByProjectScore:
		return a.ProjectScore - b.ProjectScore
	}
	return 0
}
