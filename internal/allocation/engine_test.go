package allocation

import (
	"testing"

	"github.com/shopspring/decimal"

	apperrors "mgao/internal/errors"
)

func snapshot(id, name string, population, output int64, score int) CountySnapshot {
	return CountySnapshot{
		ID:             id,
		Name:           name,
		Population:     population,
		EconomicOutput: decimal.NewFromInt(output),
		ProjectScore:   score,
	}
}

func shareSum(shares []Share) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s.Amount)
	}
	return sum
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %q, got nil", code)
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Errorf("expected code %q, got %q (message: %s)", code, appErr.Code, appErr.Message)
	}
}

func TestAllocateEqual(t *testing.T) {
	t.Run("even_split", func(t *testing.T) {
		// Scenario: three counties, total 300, everyone gets 100.
		counties := []CountySnapshot{
			snapshot("a", "Alpha", 100, 1000, 5),
			snapshot("b", "Beta", 200, 1000, 5),
			snapshot("c", "Gamma", 100, 500, 5),
		}
		shares, err := Allocate(decimal.NewFromInt(300), counties, MethodEqual)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(shares) != 3 {
			t.Fatalf("expected 3 shares, got %d", len(shares))
		}
		want := decimal.NewFromInt(100)
		for _, share := range shares {
			if !share.Amount.Equal(want) {
				t.Errorf("county %s: expected 100, got %s", share.CountyName, share.Amount)
			}
		}
	})

	t.Run("uneven_total_sums_exactly", func(t *testing.T) {
		counties := []CountySnapshot{
			snapshot("a", "Alpha", 100, 1000, 5),
			snapshot("b", "Beta", 200, 1000, 5),
			snapshot("c", "Gamma", 100, 500, 5),
		}
		total := decimal.NewFromInt(100)
		shares, err := Allocate(total, counties, MethodEqual)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !shareSum(shares).Equal(total) {
			t.Errorf("expected shares to sum to %s, got %s", total, shareSum(shares))
		}

		// Every share stays within 1e-6 of the ideal even split.
		ideal := total.Div(decimal.NewFromInt(3))
		tolerance := decimal.New(1, -6)
		for _, share := range shares {
			if share.Amount.Sub(ideal).Abs().GreaterThan(tolerance) {
				t.Errorf("county %s: %s deviates from even split %s", share.CountyName, share.Amount, ideal)
			}
		}
	})

	t.Run("single_county_gets_everything", func(t *testing.T) {
		counties := []CountySnapshot{snapshot("a", "Alpha", 100, 1000, 5)}
		total := decimal.NewFromInt(12345)
		shares, err := Allocate(total, counties, MethodEqual)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !shares[0].Amount.Equal(total) {
			t.Errorf("expected %s, got %s", total, shares[0].Amount)
		}
	})
}

func TestAllocateGDPPerCapita(t *testing.T) {
	t.Run("poorest_county_gets_largest_share", func(t *testing.T) {
		// GDP per capita 10, 5 and 2.
		counties := []CountySnapshot{
			snapshot("a", "Rich", 100, 1000, 5),
			snapshot("b", "Middle", 100, 500, 5),
			snapshot("c", "Poor", 100, 200, 5),
		}
		total := decimal.NewFromInt(1000)
		shares, err := Allocate(total, counties, MethodGDPPerCapita)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Weights are max-gdp+min: 2, 7 and 10 out of 19.
		if !shares[2].Amount.GreaterThan(shares[1].Amount) || !shares[1].Amount.GreaterThan(shares[0].Amount) {
			t.Errorf("expected Poor > Middle > Rich, got %s, %s, %s",
				shares[2].Amount, shares[1].Amount, shares[0].Amount)
		}
		if !shareSum(shares).Equal(total) {
			t.Errorf("expected shares to sum to %s, got %s", total, shareSum(shares))
		}

		wantPoor := total.Mul(decimal.NewFromInt(10)).Div(decimal.NewFromInt(19))
		tolerance := decimal.New(1, -6)
		if shares[2].Amount.Sub(wantPoor).Abs().GreaterThan(tolerance) {
			t.Errorf("expected Poor share near %s, got %s", wantPoor, shares[2].Amount)
		}
	})

	t.Run("identical_gdp_degenerates_to_equal", func(t *testing.T) {
		counties := []CountySnapshot{
			snapshot("a", "Alpha", 100, 1000, 5),
			snapshot("b", "Beta", 200, 2000, 5),
			snapshot("c", "Gamma", 400, 4000, 5),
		}
		shares, err := Allocate(decimal.NewFromInt(300), counties, MethodGDPPerCapita)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := decimal.NewFromInt(100)
		for _, share := range shares {
			if !share.Amount.Equal(want) {
				t.Errorf("county %s: expected 100, got %s", share.CountyName, share.Amount)
			}
		}
	})

	t.Run("zero_population_rejected", func(t *testing.T) {
		counties := []CountySnapshot{
			snapshot("a", "Alpha", 0, 1000, 5),
			snapshot("b", "Beta", 100, 1000, 5),
		}
		_, err := Allocate(decimal.NewFromInt(100), counties, MethodGDPPerCapita)
		assertCode(t, err, "ZERO_POPULATION")
	})

	t.Run("all_zero_output_rejected", func(t *testing.T) {
		// All GDPs are zero, so every weight collapses to zero.
		counties := []CountySnapshot{
			snapshot("a", "Alpha", 100, 0, 5),
			snapshot("b", "Beta", 200, 0, 5),
		}
		_, err := Allocate(decimal.NewFromInt(100), counties, MethodGDPPerCapita)
		assertCode(t, err, "ZERO_TOTAL_WEIGHT")
	})
}

func TestAllocateProjectScore(t *testing.T) {
	t.Run("proportional_to_score", func(t *testing.T) {
		// Scores 1, 1 and 8 with total 100: 10, 10 and 80.
		counties := []CountySnapshot{
			snapshot("a", "Alpha", 100, 1000, 1),
			snapshot("b", "Beta", 100, 1000, 1),
			snapshot("c", "Gamma", 100, 1000, 8),
		}
		total := decimal.NewFromInt(100)
		shares, err := Allocate(total, counties, MethodProjectScore)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !shares[0].Amount.Equal(decimal.NewFromInt(10)) {
			t.Errorf("expected Alpha to get 10, got %s", shares[0].Amount)
		}
		if !shares[1].Amount.Equal(decimal.NewFromInt(10)) {
			t.Errorf("expected Beta to get 10, got %s", shares[1].Amount)
		}
		if !shares[2].Amount.Equal(decimal.NewFromInt(80)) {
			t.Errorf("expected Gamma to get 80, got %s", shares[2].Amount)
		}
	})

	t.Run("monotonic_in_score", func(t *testing.T) {
		counties := []CountySnapshot{
			snapshot("a", "Alpha", 100, 1000, 2),
			snapshot("b", "Beta", 100, 1000, 5),
			snapshot("c", "Gamma", 100, 1000, 5),
			snapshot("d", "Delta", 100, 1000, 9),
		}
		shares, err := Allocate(decimal.NewFromInt(1000), counties, MethodProjectScore)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := 1; i < len(shares); i++ {
			if shares[i].Amount.LessThan(shares[i-1].Amount) {
				t.Errorf("allocation not monotonic in score: %s < %s",
					shares[i].Amount, shares[i-1].Amount)
			}
		}
	})

	t.Run("all_zero_scores_rejected", func(t *testing.T) {
		counties := []CountySnapshot{
			snapshot("a", "Alpha", 100, 1000, 0),
			snapshot("b", "Beta", 100, 1000, 0),
		}
		_, err := Allocate(decimal.NewFromInt(100), counties, MethodProjectScore)
		assertCode(t, err, "VALIDATION_FAILED")
	})
}

func TestAllocateValidation(t *testing.T) {
	counties := []CountySnapshot{snapshot("a", "Alpha", 100, 1000, 5)}

	t.Run("empty_county_set", func(t *testing.T) {
		_, err := Allocate(decimal.NewFromInt(100), nil, MethodEqual)
		assertCode(t, err, "VALIDATION_FAILED")
	})

	t.Run("zero_total", func(t *testing.T) {
		_, err := Allocate(decimal.Zero, counties, MethodEqual)
		assertCode(t, err, "VALIDATION_FAILED")
	})

	t.Run("negative_total", func(t *testing.T) {
		_, err := Allocate(decimal.NewFromInt(-5), counties, MethodEqual)
		assertCode(t, err, "VALIDATION_FAILED")
	})

	t.Run("unknown_method", func(t *testing.T) {
		_, err := Allocate(decimal.NewFromInt(100), counties, Method("random"))
		assertCode(t, err, "VALIDATION_FAILED")
	})
}

func TestAllocateSumInvariant(t *testing.T) {
	counties := []CountySnapshot{
		snapshot("a", "Alpha", 4397073, 2500000000, 9),
		snapshot("b", "Beta", 1208333, 800000000, 8),
		snapshot("c", "Gamma", 2417735, 600000000, 7),
		snapshot("d", "Delta", 2162202, 450000000, 6),
		snapshot("e", "Epsilon", 1421932, 300000000, 5),
	}
	totals := []decimal.Decimal{
		decimal.NewFromInt(1),
		decimal.NewFromInt(1000),
		decimal.RequireFromString("999999.99"),
		decimal.RequireFromString("0.07"),
	}

	for _, method := range Methods() {
		for _, total := range totals {
			shares, err := Allocate(total, counties, method)
			if err != nil {
				t.Fatalf("%s/%s: unexpected error: %v", method, total, err)
			}
			if !shareSum(shares).Equal(total) {
				t.Errorf("%s/%s: shares sum to %s", method, total, shareSum(shares))
			}
			for _, share := range shares {
				if share.Amount.IsNegative() {
					t.Errorf("%s/%s: negative share %s for %s", method, total, share.Amount, share.CountyName)
				}
			}
		}
	}
}

func TestAllocateDeterministic(t *testing.T) {
	counties := []CountySnapshot{
		snapshot("a", "Alpha", 100, 1000, 3),
		snapshot("b", "Beta", 250, 1700, 7),
		snapshot("c", "Gamma", 90, 400, 9),
	}
	total := decimal.RequireFromString("1234.56")

	for _, method := range Methods() {
		first, err := Allocate(total, counties, method)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", method, err)
		}
		second, err := Allocate(total, counties, method)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", method, err)
		}
		for i := range first {
			if first[i].CountyID != second[i].CountyID || !first[i].Amount.Equal(second[i].Amount) {
				t.Errorf("%s: run differs at index %d: %+v vs %+v", method, i, first[i], second[i])
			}
		}
	}
}

func TestAllocatePercentages(t *testing.T) {
	counties := []CountySnapshot{
		snapshot("a", "Alpha", 100, 1000, 1),
		snapshot("b", "Beta", 100, 1000, 3),
	}
	shares, err := Allocate(decimal.NewFromInt(400), counties, MethodProjectScore)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !shares[0].Percentage.Equal(decimal.NewFromInt(25)) {
		t.Errorf("expected 25%%, got %s", shares[0].Percentage)
	}
	if !shares[1].Percentage.Equal(decimal.NewFromInt(75)) {
		t.Errorf("expected 75%%, got %s", shares[1].Percentage)
	}
}
