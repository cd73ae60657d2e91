package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harmonk/papertrade/internal/clients/yahoo"
	"github.com/harmonk/papertrade/internal/models"
	"github.com/harmonk/papertrade/internal/services/ledger"
)

func TestPathParam(t *testing.T) {
	tests := []struct {
		path     string
		prefix   string
		suffix   string
		expected string
	}{
		{"/api/market/quote/AAPL", "/api/market/quote/", "", "AAPL"},
		{"/api/watchlist/TSLA", "/api/watchlist/", "", "TSLA"},
		{"/api/market/quote/", "/api/market/quote/", "", ""},
		{"/api/other/AAPL", "/api/market/quote/", "", ""},
		{"/api/market/history/AAPL/extra", "/api/market/history/", "", "AAPL"},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, tt.path, nil)
		if got := PathParam(r, tt.prefix, tt.suffix); got != tt.expected {
			t.Errorf("PathParam(%q, %q, %q) = %q, want %q", tt.path, tt.prefix, tt.suffix, got, tt.expected)
		}
	}
}

func TestWriteServiceError_Mapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{fmt.Errorf("buy: %w", models.ErrInvalidInput), http.StatusBadRequest, CodeInvalidInput},
		{fmt.Errorf("quote: %w", models.ErrSymbolUnavailable), http.StatusNotFound, CodeSymbolUnavailable},
		{fmt.Errorf("sell: %w", ledger.ErrNoPosition), http.StatusNotFound, CodeNoPosition},
		{fmt.Errorf("buy: %w", ledger.ErrInsufficientFunds), http.StatusConflict, CodeInsufficientFunds},
		{fmt.Errorf("sell: %w", ledger.ErrInsufficientShares), http.StatusConflict, CodeInsufficientShares},
		{&yahoo.APIError{StatusCode: 500, Message: "upstream broke"}, http.StatusBadGateway, CodeUpstreamError},
		{errors.New("something else"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		WriteServiceError(rec, tt.err)
		if rec.Code != tt.wantStatus {
			t.Errorf("%v: status = %d, want %d", tt.err, rec.Code, tt.wantStatus)
		}
		if code := errorCode(t, rec); code != tt.wantCode {
			t.Errorf("%v: code = %q, want %q", tt.err, code, tt.wantCode)
		}
	}
}

func TestRequireMethod(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/api/health", nil)

	if RequireMethod(rec, r, http.MethodGet, http.MethodHead) {
		t.Error("expected RequireMethod to reject DELETE")
	}
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, HEAD" {
		t.Errorf("Allow = %q, want \"GET, HEAD\"", allow)
	}
}
