// README: Pagination parameter and metadata tests (no database).
package trip

import "testing"

func TestNewPageParams(t *testing.T) {
	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 10},
		{-3, -1, 1, 10},
		{2, 5, 2, 5},
		{1, 500, 1, 100},
	}
	for _, tc := range cases {
		p := NewPageParams(tc.page, tc.limit)
		if p.Page != tc.wantPage || p.Limit != tc.wantLimit {
			t.Errorf("NewPageParams(%d, %d) = %+v, want page %d limit %d",
				tc.page, tc.limit, p, tc.wantPage, tc.wantLimit)
		}
	}
}

func TestPageParamsOffset(t *testing.T) {
	if got := NewPageParams(1, 10).Offset(); got != 0 {
		t.Errorf("page 1 offset = %d, want 0", got)
	}
	if got := NewPageParams(3, 25).Offset(); got != 50 {
		t.Errorf("page 3 limit 25 offset = %d, want 50", got)
	}
}

func TestNewPagination(t *testing.T) {
	// 7 matching trips listed 5 at a time: page 2 holds the 2 leftovers.
	p := NewPagination(NewPageParams(2, 5), 7)
	if p.TotalPages != 2 || p.TotalRecords != 7 {
		t.Errorf("totals = %+v, want 2 pages / 7 records", p)
	}
	if p.HasNext || !p.HasPrev {
		t.Errorf("page 2 of 2: has_next=%v has_prev=%v", p.HasNext, p.HasPrev)
	}

	first := NewPagination(NewPageParams(1, 5), 7)
	if !first.HasNext || first.HasPrev {
		t.Errorf("page 1 of 2: has_next=%v has_prev=%v", first.HasNext, first.HasPrev)
	}

	empty := NewPagination(NewPageParams(1, 10), 0)
	if empty.TotalPages != 0 || empty.HasNext || empty.HasPrev {
		t.Errorf("empty result pagination = %+v", empty)
	}
}

// Over every filter outcome, the page sizes must sum to the total.
func TestPaginationLaw(t *testing.T) {
	for _, total := range []int{0, 1, 9, 10, 11, 37, 100} {
		for _, limit := range []int{1, 3, 10, 100} {
			meta := NewPagination(NewPageParams(1, limit), total)
			sum := 0
			for page := 1; page <= meta.TotalPages; page++ {
				remaining := total - (page-1)*limit
				if remaining > limit {
					remaining = limit
				}
				sum += remaining

				m := NewPagination(NewPageParams(page, limit), total)
				if m.HasNext != (page < m.TotalPages) {
					t.Errorf("total %d limit %d page %d: has_next=%v", total, limit, page, m.HasNext)
				}
				if m.HasPrev != (page > 1) {
					t.Errorf("total %d limit %d page %d: has_prev=%v", total, limit, page, m.HasPrev)
				}
			}
			if sum != total {
				t.Errorf("total %d limit %d: page sizes sum to %d", total, limit, sum)
			}
		}
	}
}
