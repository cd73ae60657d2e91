package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/harmonk/papertrade/internal/app"
	"github.com/harmonk/papertrade/internal/common"
	"github.com/harmonk/papertrade/internal/interfaces"
	"github.com/harmonk/papertrade/internal/models"
	"github.com/harmonk/papertrade/internal/services/ledger"
	"github.com/harmonk/papertrade/internal/services/quote"
	"github.com/harmonk/papertrade/internal/services/watchlist"
	"github.com/harmonk/papertrade/internal/storage/memory"
)

// fakeMarketClient serves canned quotes and history keyed by symbol.
// Unknown symbols behave like a failed upstream lookup.
type fakeMarketClient struct {
	prices    map[string]float64
	histories map[string]*models.History
}

func (f *fakeMarketClient) GetQuote(_ context.Context, symbol string) (*models.Quote, error) {
	price, ok := f.prices[symbol]
	if !ok {
		return nil, fmt.Errorf("quote %s: %w", symbol, models.ErrSymbolUnavailable)
	}
	return &models.Quote{
		Symbol:    symbol,
		Price:     price,
		FetchedAt: time.Now(),
	}, nil
}

func (f *fakeMarketClient) GetHistory(_ context.Context, symbol string, _ ...interfaces.HistoryOption) (*models.History, error) {
	history, ok := f.histories[symbol]
	if !ok {
		return nil, fmt.Errorf("history %s: %w", symbol, models.ErrSymbolUnavailable)
	}
	return history, nil
}

// newTestServer builds a Server over real services and an in-memory session
// store, with market data served by the fake client.
func newTestServer(t *testing.T, market *fakeMarketClient) *Server {
	t.Helper()

	config := common.NewDefaultConfig()
	config.Auth.JWTSecret = "test-secret-key"
	logger := common.NewSilentLogger()

	a := &app.App{
		Config:           config,
		Logger:           logger,
		Sessions:         memory.NewSessionStore(decimal.NewFromInt(10000), logger),
		MarketClient:     market,
		// Nanosecond TTL: every request hits the fake client, so tests can
		// move prices between calls without fighting the cache.
		QuoteService:     quote.NewService(market, time.Nanosecond, logger),
		LedgerService:    ledger.NewService(logger),
		WatchlistService: watchlist.NewService(logger),
		StartupTime:      time.Now(),
	}

	return NewServer(a)
}

// doRequest runs a request through the full middleware stack.
func doRequest(s *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

// login logs in as the given user and returns the bearer token.
func login(t *testing.T, s *Server, username string) string {
	t.Helper()

	rec := doRequest(s, http.MethodPost, "/api/auth/login", "", map[string]string{"username": username})
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: status %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("login returned empty token")
	}
	return resp.Token
}

// decodeBody unmarshals a recorded JSON body into v.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response body %q: %v", rec.Body.String(), err)
	}
}

// errorCode extracts the stable error code from an error response.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	return resp.Code
}
