package services

import (
	"github.com/shopspring/decimal"

	"mgao/internal/allocation"
	"mgao/internal/listing"
	"mgao/internal/models"
)

// CountyServicer defines the contract for county store operations.
type CountyServicer interface {
	CreateCounty(input CountyInput) (*models.County, error)
	ListCounties(sort listing.Sort) ([]models.County, error)
	GetCountyByID(id string) (*models.County, error)
	FindCountiesByName(name string) ([]models.County, error)
	UpdateCounty(id string, update CountyUpdate) (*models.County, error)
	DeleteCounty(id string, cascade bool) error
	AllocationSummary(id string) (*CountyAllocationSummary, error)
	Count() (int64, error)
}

// BudgetServicer defines the contract for budget store operations and the
// glue between the store and the allocation engine.
type BudgetServicer interface {
	CreateBudget(name string, total decimal.Decimal, method allocation.Method) (*models.Budget, error)
	ListBudgets(page listing.PageRequest) (*listing.PageResponse[models.Budget], error)
	GetBudgetWithAllocations(id string) (*models.Budget, error)
	DeleteBudget(id string) error
	Statistics() (*BudgetStatistics, error)
	CompareMethods(total decimal.Decimal) ([]allocation.MethodResult, error)
}
