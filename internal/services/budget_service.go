package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mgao/internal/allocation"
	apperrors "mgao/internal/errors"
	"mgao/internal/listing"
	"mgao/internal/models"
	"mgao/internal/validator"
)

// BudgetInput holds the validated fields of a budget creation request.
type BudgetInput struct {
	Name   string `validate:"required,max=200"`
	Method string `validate:"required,allocation_method"`
}

// BudgetStatistics aggregates store-wide budget numbers for status reporting.
type BudgetStatistics struct {
	TotalBudgets     int64
	TotalAllocations int64
	TotalAmount      decimal.Decimal
	AverageAmount    decimal.Decimal
	MethodCounts     map[allocation.Method]int64
}

// budgetService handles budget store operations and drives the allocation
// engine when a budget is materialized.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CreateBudget runs the allocation engine over the current county set and
// writes the budget together with its allocation batch in one transaction.
// On any failure nothing is written: validation and the engine run before
// the transaction starts, and a mid-batch error rolls everything back.
func (s *budgetService) CreateBudget(name string, total decimal.Decimal, method allocation.Method) (*models.Budget, error) {
	name = strings.TrimSpace(name)
	if err := validator.Get().Struct(BudgetInput{Name: name, Method: string(method)}); err != nil {
		return nil, validationError(err)
	}
	if !total.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "budget total must be greater than zero")
	}

	counties, err := s.loadCounties()
	if err != nil {
		return nil, err
	}
	if len(counties) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "no counties to allocate to; add counties first")
	}

	shares, err := allocation.Allocate(total, snapshots(counties), method)
	if err != nil {
		return nil, err
	}

	budget := &models.Budget{Name: name, TotalAmount: total, Method: method}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(budget).Error; err != nil {
			return err
		}
		allocations := make([]models.Allocation, len(shares))
		for i, share := range shares {
			allocations[i] = models.Allocation{
				BudgetID: budget.ID,
				CountyID: share.CountyID,
				Amount:   share.Amount,
			}
		}
		if err := tx.Create(&allocations).Error; err != nil {
			return err
		}
		budget.Allocations = allocations
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return budget, nil
}

// ListBudgets returns a page of budgets, newest first.
func (s *budgetService) ListBudgets(page listing.PageRequest) (*listing.PageResponse[models.Budget], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Budget{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	var budgets []models.Budget
	if err := s.db.
		Order("created_at DESC, id DESC").
		Scopes(listing.Paginate(page)).
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	result := listing.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetWithAllocations returns a budget with its allocations and their
// counties loaded, allocations ordered by county identifier.
func (s *budgetService) GetBudgetWithAllocations(id string) (*models.Budget, error) {
	var budget models.Budget
	err := s.db.
		Preload("Allocations", func(db *gorm.DB) *gorm.DB { return db.Order("county_id ASC") }).
		Preload("Allocations.County").
		Where("id = ?", id).
		First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return &budget, nil
}

// DeleteBudget removes a budget and its allocations in one transaction.
// The budget owns its allocations exclusively, so no referential check
// applies here.
func (s *budgetService) DeleteBudget(id string) error {
	budget, err := s.GetBudgetWithAllocations(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("budget_id = ?", id).Delete(&models.Allocation{}).Error; err != nil {
			return err
		}
		return tx.Delete(budget).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return nil
}

// Statistics aggregates budget counts and amounts across the store.
func (s *budgetService) Statistics() (*BudgetStatistics, error) {
	stats := &BudgetStatistics{
		TotalAmount:   decimal.Zero,
		AverageAmount: decimal.Zero,
		MethodCounts:  make(map[allocation.Method]int64),
	}

	if err := s.db.Model(&models.Budget{}).Count(&stats.TotalBudgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	if err := s.db.Model(&models.Allocation{}).Count(&stats.TotalAllocations).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	var budgets []models.Budget
	if err := s.db.Select("total_amount, method").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	for _, budget := range budgets {
		stats.TotalAmount = stats.TotalAmount.Add(budget.TotalAmount)
		stats.MethodCounts[budget.Method]++
	}
	if stats.TotalBudgets > 0 {
		stats.AverageAmount = stats.TotalAmount.Div(decimal.NewFromInt(stats.TotalBudgets))
	}
	return stats, nil
}

// CompareMethods runs the comparison reporter over the current county set.
// Results are computed only; nothing is persisted.
func (s *budgetService) CompareMethods(total decimal.Decimal) ([]allocation.MethodResult, error) {
	// Per-method errors stay in the results, but a total no method could
	// ever accept is rejected outright.
	if !total.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "budget total must be greater than zero")
	}

	counties, err := s.loadCounties()
	if err != nil {
		return nil, err
	}
	if len(counties) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "no counties to compare; add counties first")
	}
	return allocation.Compare(total, snapshots(counties)), nil
}

// loadCounties fetches all counties in identifier order, the order the
// engine expects.
func (s *budgetService) loadCounties() ([]models.County, error) {
	var counties []models.County
	if err := s.db.Order("id ASC").Find(&counties).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return counties, nil
}

// snapshots converts store rows into the engine's input type.
func snapshots(counties []models.County) []allocation.CountySnapshot {
	out := make([]allocation.CountySnapshot, len(counties))
	for i, county := range counties {
		out[i] = allocation.CountySnapshot{
			ID:             county.ID,
			Name:           county.Name,
			Population:     county.Population,
			EconomicOutput: county.EconomicOutput,
			ProjectScore:   county.ProjectScore,
		}
	}
	return out
}
