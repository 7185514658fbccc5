package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newContext(query string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestFromContext_Defaults(t *testing.T) {
	p := FromContext(newContext(""))
	if p.Page != 1 {
		t.Errorf("expected page 1, got %d", p.Page)
	}
	if p.RowsPerPage != DefaultRowsPerPage {
		t.Errorf("expected rowsPerPage %d, got %d", DefaultRowsPerPage, p.RowsPerPage)
	}
}

func TestFromContext_ClampsMax(t *testing.T) {
	p := FromContext(newContext("rowsPerPage=500"))
	if p.RowsPerPage != MaxRowsPerPage {
		t.Errorf("expected rowsPerPage clamped to %d, got %d", MaxRowsPerPage, p.RowsPerPage)
	}
}

func TestFromContext_NegativePage(t *testing.T) {
	p := FromContext(newContext("page=-3"))
	if p.Page != 1 {
		t.Errorf("expected page 1, got %d", p.Page)
	}
}

func TestParse_Defaults(t *testing.T) {
	p, err := Parse("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Page != 1 || p.RowsPerPage != DefaultRowsPerPage {
		t.Errorf("expected defaults, got %+v", p)
	}
}

func TestParse_Valid(t *testing.T) {
	p, err := Parse("3", "50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Page != 3 || p.RowsPerPage != 50 {
		t.Errorf("expected page 3 rows 50, got %+v", p)
	}
	if p.Offset() != 100 {
		t.Errorf("expected offset 100, got %d", p.Offset())
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := []struct {
		name string
		page string
		rows string
	}{
		{"zero page", "0", ""},
		{"negative page", "-1", ""},
		{"non-numeric page", "abc", ""},
		{"zero rows", "", "0"},
		{"rows over max", "", "101"},
		{"non-numeric rows", "", "ten"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.page, tc.rows); err == nil {
				t.Errorf("expected error for page=%q rows=%q", tc.page, tc.rows)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, rows, want int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{7, 3, 3},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.rows); got != tc.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.rows, got, tc.want)
		}
	}
}

func TestNewResponse_Empty(t *testing.T) {
	resp := NewResponse([]string{}, 0, Params{Page: 1, RowsPerPage: 20})
	if resp.Pagination.TotalPages != 0 {
		t.Errorf("expected totalPages 0 for empty set, got %d", resp.Pagination.TotalPages)
	}
	if resp.Pagination.Page != 1 || resp.Pagination.RowsPerPage != 20 {
		t.Errorf("expected defaults preserved, got %+v", resp.Pagination)
	}
}

func TestHasNext(t *testing.T) {
	p := Params{Page: 1, RowsPerPage: 3}
	if !p.HasNext(7) {
		t.Error("expected next page for total 7")
	}
	last := Params{Page: 3, RowsPerPage: 3}
	if last.HasNext(7) {
		t.Error("did not expect next page past total")
	}
}
