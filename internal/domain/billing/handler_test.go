package billing

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newReportHandler(repo ReportRepository) *Handler {
	return NewHandler(NewService(repo, newMockEstimateRepo()), zerolog.Nop())
}

func doReport(h *Handler, query string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/billing/outstanding-balance?"+query, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.OutstandingBalance(c); err != nil {
		panic(err)
	}
	return rec
}

func TestOutstandingBalanceHandler_OK(t *testing.T) {
	repo := &mockReportRepo{
		rows: []*OutstandingBalanceRow{
			{
				ClientID:                uuid.New(),
				ClientLegalFirstName:    "Jamie",
				ClientLegalLastName:     "Rivera",
				TotalServiceAmount:      370,
				TotalPaidAmount:         190,
				TotalOutstandingBalance: 170,
			},
		},
		total: 1,
	}
	h := newReportHandler(repo)

	rec := doReport(h, "startDate=2025-01-01&endDate=2025-01-31")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var resp struct {
		Data []struct {
			ClientID                string  `json:"clientId"`
			ClientLegalFirstName    string  `json:"clientLegalFirstName"`
			ClientLegalLastName     string  `json:"clientLegalLastName"`
			TotalServiceAmount      float64 `json:"totalServiceAmount"`
			TotalPaidAmount         float64 `json:"totalPaidAmount"`
			TotalOutstandingBalance float64 `json:"totalOutstandingBalance"`
		} `json:"data"`
		Pagination struct {
			Page        int `json:"page"`
			RowsPerPage int `json:"rowsPerPage"`
			Total       int `json:"total"`
			TotalPages  int `json:"totalPages"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("expected 1 row, got %d", len(resp.Data))
	}
	row := resp.Data[0]
	if row.TotalServiceAmount != 370 || row.TotalPaidAmount != 190 || row.TotalOutstandingBalance != 170 {
		t.Errorf("unexpected sums: %+v", row)
	}
	if resp.Pagination.Page != 1 || resp.Pagination.RowsPerPage != 20 ||
		resp.Pagination.Total != 1 || resp.Pagination.TotalPages != 1 {
		t.Errorf("unexpected pagination: %+v", resp.Pagination)
	}
}

func TestOutstandingBalanceHandler_EmptyWindow(t *testing.T) {
	h := newReportHandler(&mockReportRepo{})

	rec := doReport(h, "startDate=2025-06-01&endDate=2025-06-30")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data       []json.RawMessage `json:"data"`
		Pagination struct {
			Page        int `json:"page"`
			RowsPerPage int `json:"rowsPerPage"`
			Total       int `json:"total"`
			TotalPages  int `json:"totalPages"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Data == nil {
		t.Error("data must serialize as [], not null")
	}
	if len(resp.Data) != 0 {
		t.Errorf("expected no rows, got %d", len(resp.Data))
	}
	p := resp.Pagination
	if p.Page != 1 || p.RowsPerPage != 20 || p.Total != 0 || p.TotalPages != 0 {
		t.Errorf("unexpected pagination: %+v", p)
	}
}

func TestOutstandingBalanceHandler_InvalidDate(t *testing.T) {
	h := newReportHandler(&mockReportRepo{})

	for _, query := range []string{
		"endDate=2025-01-31",
		"startDate=2025-01-01",
		"startDate=01/01/2025&endDate=2025-01-31",
		"startDate=2025-02-30&endDate=2025-03-01",
	} {
		rec := doReport(h, query)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", query, rec.Code)
			continue
		}
		var body map[string]string
		json.Unmarshal(rec.Body.Bytes(), &body)
		if body["error"] != ErrInvalidDateFormat.Error() {
			t.Errorf("%s: error = %q", query, body["error"])
		}
	}
}

func TestOutstandingBalanceHandler_InvertedRange(t *testing.T) {
	h := newReportHandler(&mockReportRepo{})

	rec := doReport(h, "startDate=2025-02-01&endDate=2025-01-31")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != ErrInvertedRange.Error() {
		t.Errorf("error = %q, want range message", body["error"])
	}
}

func TestOutstandingBalanceHandler_InvalidPagination(t *testing.T) {
	h := newReportHandler(&mockReportRepo{})

	for _, query := range []string{
		"startDate=2025-01-01&endDate=2025-01-31&page=0",
		"startDate=2025-01-01&endDate=2025-01-31&page=abc",
		"startDate=2025-01-01&endDate=2025-01-31&rowsPerPage=0",
		"startDate=2025-01-01&endDate=2025-01-31&rowsPerPage=101",
	} {
		rec := doReport(h, query)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", query, rec.Code)
		}
	}
}

func TestOutstandingBalanceHandler_DBError(t *testing.T) {
	h := newReportHandler(&mockReportRepo{err: fmt.Errorf("connection refused")})

	rec := doReport(h, "startDate=2025-01-01&endDate=2025-01-31")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "Failed to fetch outstanding balance report" {
		t.Errorf("error = %q", body["error"])
	}
	if body["details"] != "connection refused" {
		t.Errorf("details = %q", body["details"])
	}
}

func TestOutstandingBalanceHandler_PassesNormalizedRange(t *testing.T) {
	repo := &mockReportRepo{}
	h := newReportHandler(repo)

	doReport(h, "startDate=2025-01-01&endDate=2025-01-31&page=2&rowsPerPage=3")
	q := repo.gotQuery
	if q.Page.Page != 2 || q.Page.RowsPerPage != 3 || q.Page.Offset() != 3 {
		t.Errorf("pagination = %+v", q.Page)
	}
	if q.End.Hour() != 23 || q.End.Minute() != 59 || q.End.Second() != 59 {
		t.Errorf("end not normalized to end of day: %v", q.End)
	}
}
