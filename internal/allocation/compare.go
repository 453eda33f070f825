package allocation

import "github.com/shopspring/decimal"

// MethodResult pairs one method with its computed shares, or with the error
// that prevented the method from running.
type MethodResult struct {
	Method Method
	Shares []Share
	Err    error
}

// Compare runs every allocation method over the same total and county set,
// in the fixed method order. A method that fails carries its error in the
// result and does not prevent the other methods from computing. Nothing is
// persisted.
func Compare(total decimal.Decimal, counties []CountySnapshot) []MethodResult {
	methods := Methods()
	results := make([]MethodResult, 0, len(methods))
	for _, method := range methods {
		shares, err := Allocate(total, counties, method)
		results = append(results, MethodResult{Method: method, Shares: shares, Err: err})
	}
	return results
}
