package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestBodyLimit_RejectsOversizedContentLength(t *testing.T) {
	e := echo.New()
	mw := BodyLimit("10", "1M")

	req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(strings.Repeat("x", 100)))
	rec := httptest.NewRecorder()

	err := mw(okHandler)(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %v", err)
	}
}

func TestBodyLimit_EnforcesLimitWithoutContentLength(t *testing.T) {
	e := echo.New()
	mw := BodyLimit("10", "1M")

	req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(strings.Repeat("x", 100)))
	req.ContentLength = -1
	rec := httptest.NewRecorder()

	readAll := func(c echo.Context) error {
		_, err := io.ReadAll(c.Request().Body)
		return err
	}
	err := mw(readAll)(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 from limited reader, got %v", err)
	}
}

func TestBodyLimit_DocumentUploadsGetLargerLimit(t *testing.T) {
	e := echo.New()
	mw := BodyLimit("10", "1K")

	body := strings.Repeat("x", 100)
	req := httptest.NewRequest(http.MethodPost, "/api/shared-documents", strings.NewReader(body))
	rec := httptest.NewRecorder()

	if err := mw(okHandler)(e.NewContext(req, rec)); err != nil {
		t.Fatalf("upload within upload limit should pass, got %v", err)
	}
}

func TestParseLimit(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"1M", 1 << 20},
		{"512K", 512 << 10},
		{"2G", 2 << 30},
		{"100", 100},
		{"", 1 << 20},
		{"garbage", 1 << 20},
	}
	for _, tc := range cases {
		if got := parseLimit(tc.in); got != tc.want {
			t.Errorf("parseLimit(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
