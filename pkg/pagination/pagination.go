package pagination

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultRowsPerPage = 20
	MaxRowsPerPage     = 100
)

// Params holds pagination parameters extracted from a request.
type Params struct {
	Page        int
	RowsPerPage int
}

// FromContext extracts pagination parameters from the echo context,
// falling back to defaults for missing or unusable values.
func FromContext(c echo.Context) Params {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}

	rows, _ := strconv.Atoi(c.QueryParam("rowsPerPage"))
	if rows < 1 {
		rows = DefaultRowsPerPage
	}
	if rows > MaxRowsPerPage {
		rows = MaxRowsPerPage
	}

	return Params{Page: page, RowsPerPage: rows}
}

// Parse validates pagination query parameters strictly. Unlike FromContext it
// rejects values that are present but invalid instead of silently correcting
// them. Empty strings take the defaults.
func Parse(pageStr, rowsStr string) (Params, error) {
	p := Params{Page: 1, RowsPerPage: DefaultRowsPerPage}

	if pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return Params{}, fmt.Errorf("page must be an integer greater than or equal to 1")
		}
		p.Page = page
	}

	if rowsStr != "" {
		rows, err := strconv.Atoi(rowsStr)
		if err != nil || rows < 1 || rows > MaxRowsPerPage {
			return Params{}, fmt.Errorf("rowsPerPage must be an integer between 1 and %d", MaxRowsPerPage)
		}
		p.RowsPerPage = rows
	}

	return p, nil
}

// Offset returns the row offset for the requested page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.RowsPerPage
}

// Meta describes the pagination block returned alongside list data.
type Meta struct {
	Page        int `json:"page"`
	RowsPerPage int `json:"rowsPerPage"`
	Total       int `json:"total"`
	TotalPages  int `json:"totalPages"`
}

// Response wraps a paginated API response.
type Response struct {
	Data       interface{} `json:"data"`
	Pagination Meta        `json:"pagination"`
}

// NewResponse builds a paginated response envelope. An empty result set
// reports zero total pages, not one.
func NewResponse(data interface{}, total int, p Params) *Response {
	return &Response{
		Data: data,
		Pagination: Meta{
			Page:        p.Page,
			RowsPerPage: p.RowsPerPage,
			Total:       total,
			TotalPages:  TotalPages(total, p.RowsPerPage),
		},
	}
}

// TotalPages returns ceil(total/rowsPerPage); zero when total is zero.
func TotalPages(total, rowsPerPage int) int {
	if total <= 0 || rowsPerPage <= 0 {
		return 0
	}
	return (total + rowsPerPage - 1) / rowsPerPage
}

// HasNext reports whether results exist beyond the current page.
func (p Params) HasNext(total int) bool {
	return p.Offset()+p.RowsPerPage < total
}
