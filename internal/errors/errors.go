// Package errors provides custom error types for the mgao CLI.
// All service and engine errors use AppError so the command layer can print
// a stable error code and exit with a predictable status.
package errors

// Exit statuses per error class. Zero is reserved for success.
const (
	exitInternal    = 1
	exitValidation  = 2
	exitNotFound    = 3
	exitReferential = 4
	exitDivision    = 5
)

// AppError represents a structured application error with an error code,
// human-readable message, process exit status, and optional internal error.
type AppError struct {
	Code     string
	Message  string
	ExitCode int
	Internal error
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:     sentinel.Code,
		Message:  sentinel.Message,
		ExitCode: sentinel.ExitCode,
		Internal: internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:     sentinel.Code,
		Message:  message,
		ExitCode: sentinel.ExitCode,
		Internal: sentinel.Internal,
	}
}

// Validation errors (bad input shape or range).
var (
	ErrValidation          = &AppError{Code: "VALIDATION_FAILED", Message: "Invalid input", ExitCode: exitValidation}
	ErrDuplicateCountyName = &AppError{Code: "DUPLICATE_COUNTY_NAME", Message: "A county with this name already exists", ExitCode: exitValidation}
)

// Lookup errors.
var (
	ErrCountyNotFound = &AppError{Code: "COUNTY_NOT_FOUND", Message: "County not found", ExitCode: exitNotFound}
	ErrBudgetNotFound = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", ExitCode: exitNotFound}
)

// Referential integrity errors.
var (
	ErrCountyInUse = &AppError{Code: "COUNTY_IN_USE", Message: "County is referenced by existing allocations", ExitCode: exitReferential}
)

// Degenerate arithmetic errors.
var (
	ErrZeroPopulation  = &AppError{Code: "ZERO_POPULATION", Message: "County population is zero", ExitCode: exitDivision}
	ErrZeroTotalWeight = &AppError{Code: "ZERO_TOTAL_WEIGHT", Message: "Allocation weights sum to zero", ExitCode: exitDivision}
)

// General errors.
var (
	ErrInternal = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", ExitCode: exitInternal}
)
