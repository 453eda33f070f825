package listing

import (
	"errors"
	"testing"

	apperrors "mgao/internal/errors"
)

func TestPageRequestDefaults(t *testing.T) {
	t.Run("fills_zero_values", func(t *testing.T) {
		req := PageRequest{}
		req.Defaults()
		if req.Page != 1 {
			t.Errorf("expected page 1, got %d", req.Page)
		}
		if req.PageSize != 20 {
			t.Errorf("expected page size 20, got %d", req.PageSize)
		}
	})

	t.Run("keeps_explicit_values", func(t *testing.T) {
		req := PageRequest{Page: 3, PageSize: 5}
		req.Defaults()
		if req.Page != 3 || req.PageSize != 5 {
			t.Errorf("defaults overwrote explicit values: %+v", req)
		}
	})

	t.Run("negative_values_reset", func(t *testing.T) {
		req := PageRequest{Page: -1, PageSize: -10}
		req.Defaults()
		if req.Page != 1 || req.PageSize != 20 {
			t.Errorf("expected defaults, got %+v", req)
		}
	})
}

func TestPageRequestOffset(t *testing.T) {
	cases := []struct {
		page, pageSize, want int
	}{
		{1, 20, 0},
		{2, 20, 20},
		{4, 7, 21},
	}
	for _, c := range cases {
		req := PageRequest{Page: c.page, PageSize: c.pageSize}
		if got := req.Offset(); got != c.want {
			t.Errorf("page %d size %d: expected offset %d, got %d", c.page, c.pageSize, c.want, got)
		}
	}
}

func TestNewPageResponse(t *testing.T) {
	t.Run("computes_total_pages", func(t *testing.T) {
		resp := NewPageResponse([]int{1, 2, 3}, 1, 3, 7)
		if resp.TotalPages != 3 {
			t.Errorf("expected 3 total pages, got %d", resp.TotalPages)
		}
		if resp.TotalItems != 7 {
			t.Errorf("expected 7 total items, got %d", resp.TotalItems)
		}
	})

	t.Run("nil_data_becomes_empty_slice", func(t *testing.T) {
		resp := NewPageResponse[int](nil, 1, 20, 0)
		if resp.Data == nil {
			t.Error("expected empty slice, got nil")
		}
		if resp.TotalPages != 0 {
			t.Errorf("expected 0 total pages, got %d", resp.TotalPages)
		}
	})
}

func TestParseSortKey(t *testing.T) {
	t.Run("accepts_known_keys", func(t *testing.T) {
		for _, key := range SortKeys() {
			parsed, err := ParseSortKey(string(key))
			if err != nil {
				t.Errorf("%s: unexpected error: %v", key, err)
			}
			if parsed != key {
				t.Errorf("%s: parsed to %q", key, parsed)
			}
		}
	})

	t.Run("rejects_unknown_key", func(t *testing.T) {
		_, err := ParseSortKey("budget")
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			t.Fatalf("expected *AppError, got %T", err)
		}
		if appErr.Code != "VALIDATION_FAILED" {
			t.Errorf("expected VALIDATION_FAILED, got %s", appErr.Code)
		}
	})
}
