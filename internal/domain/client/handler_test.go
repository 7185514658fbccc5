package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler() *Handler {
	return NewHandler(newTestService())
}

func TestCreateClientHandler(t *testing.T) {
	h := newTestHandler()
	e := echo.New()
	body := `{"legal_first_name":"Jamie","legal_last_name":"Rivera"}`
	req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateClient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var got Client
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got.LegalFirstName != "Jamie" || !got.IsActive {
		t.Errorf("unexpected response: %+v", got)
	}
}

func TestCreateClientHandler_ValidationError(t *testing.T) {
	h := newTestHandler()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreateClient(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400 HTTPError, got %v", err)
	}
}

func TestGetClientHandler_InvalidID(t *testing.T) {
	h := newTestHandler()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/clients/nope", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.GetClient(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400 HTTPError, got %v", err)
	}
}

func TestListClientsHandler_PaginationEnvelope(t *testing.T) {
	h := newTestHandler()
	e := echo.New()

	for _, body := range []string{
		`{"legal_first_name":"Jamie","legal_last_name":"Rivera"}`,
		`{"legal_first_name":"Alex","legal_last_name":"Chen"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		c := e.NewContext(req, httptest.NewRecorder())
		if err := h.CreateClient(c); err != nil {
			t.Fatalf("seed client: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/clients?page=1&rowsPerPage=10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListClients(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data       []Client `json:"data"`
		Pagination struct {
			Page        int `json:"page"`
			RowsPerPage int `json:"rowsPerPage"`
			Total       int `json:"total"`
			TotalPages  int `json:"totalPages"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Errorf("expected 2 clients, got %d", len(resp.Data))
	}
	if resp.Pagination.Total != 2 || resp.Pagination.TotalPages != 1 {
		t.Errorf("unexpected pagination: %+v", resp.Pagination)
	}
}

func TestAddMemberHandler(t *testing.T) {
	h := newTestHandler()
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/api/clients",
		strings.NewReader(`{"legal_first_name":"Jamie","legal_last_name":"Rivera"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.CreateClient(e.NewContext(req, rec)); err != nil {
		t.Fatalf("seed client: %v", err)
	}
	var cl Client
	json.Unmarshal(rec.Body.Bytes(), &cl)

	req = httptest.NewRequest(http.MethodPost, "/api/client-groups",
		strings.NewReader(`{"name":"Rivera family","type":"family"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	if err := h.CreateGroup(e.NewContext(req, rec)); err != nil {
		t.Fatalf("seed group: %v", err)
	}
	var g ClientGroup
	json.Unmarshal(rec.Body.Bytes(), &g)

	req = httptest.NewRequest(http.MethodPost, "/api/client-groups/"+g.ID.String()+"/members",
		strings.NewReader(`{"client_id":"`+cl.ID.String()+`","is_responsible_for_billing":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(g.ID.String())

	if err := h.AddMember(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}
