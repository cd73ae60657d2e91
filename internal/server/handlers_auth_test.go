package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/harmonk/papertrade/internal/common"
	"github.com/harmonk/papertrade/internal/models"
)

// --- JWT helpers ---

func TestSignAndValidateJWT_RoundTrip(t *testing.T) {
	cfg := &common.AuthConfig{
		JWTSecret:   "test-secret-key",
		TokenExpiry: "1h",
	}
	session := &models.Session{ID: "session-1", Username: "alice"}

	token, err := signJWT(session, cfg)
	if err != nil {
		t.Fatalf("signJWT failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := validateJWT(token, []byte(cfg.JWTSecret))
	if err != nil {
		t.Fatalf("validateJWT failed: %v", err)
	}
	if claims["sid"] != "session-1" {
		t.Errorf("expected sid=session-1, got %v", claims["sid"])
	}
	if claims["sub"] != "alice" {
		t.Errorf("expected sub=alice, got %v", claims["sub"])
	}
	if claims["iss"] != "papertrade-server" {
		t.Errorf("expected iss=papertrade-server, got %v", claims["iss"])
	}
}

func TestValidateJWT_ExpiredToken(t *testing.T) {
	cfg := &common.AuthConfig{
		JWTSecret:   "test-secret-key",
		TokenExpiry: "-1h", // negative duration = already expired
	}
	session := &models.Session{ID: "session-1", Username: "alice"}

	token, err := signJWT(session, cfg)
	if err != nil {
		t.Fatalf("signJWT failed: %v", err)
	}

	if _, err := validateJWT(token, []byte(cfg.JWTSecret)); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	cfg := &common.AuthConfig{
		JWTSecret:   "correct-secret",
		TokenExpiry: "1h",
	}
	session := &models.Session{ID: "session-1", Username: "alice"}

	token, err := signJWT(session, cfg)
	if err != nil {
		t.Fatalf("signJWT failed: %v", err)
	}

	if _, err := validateJWT(token, []byte("wrong-secret")); err == nil {
		t.Error("expected error for wrong secret")
	}
}

// --- Login / logout handlers ---

func TestAuthLogin(t *testing.T) {
	s := newTestServer(t, &fakeMarketClient{})

	rec := doRequest(s, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "alice"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token     string `json:"token"`
		ExpiresIn int    `json:"expires_in"`
		Account   struct {
			Username string `json:"username"`
			Cash     string `json:"cash"`
		} `json:"account"`
	}
	decodeBody(t, rec, &resp)

	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.ExpiresIn <= 0 {
		t.Errorf("expires_in = %d, want positive", resp.ExpiresIn)
	}
	if resp.Account.Username != "alice" {
		t.Errorf("username = %s, want alice", resp.Account.Username)
	}
	if resp.Account.Cash != "10000" {
		t.Errorf("cash = %s, want 10000", resp.Account.Cash)
	}
}

func TestAuthLogin_EmptyUsername(t *testing.T) {
	s := newTestServer(t, &fakeMarketClient{})

	rec := doRequest(s, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "  "})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAuthLogin_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t, &fakeMarketClient{})

	rec := doRequest(s, http.MethodGet, "/api/auth/login", "", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestAuthLogin_SameNameStartsFresh(t *testing.T) {
	market := &fakeMarketClient{prices: map[string]float64{"AAPL": 100}}
	s := newTestServer(t, market)

	first := login(t, s, "alice")
	rec := doRequest(s, http.MethodPost, "/api/trades/buy", first, map[string]interface{}{"symbol": "AAPL", "quantity": 5})
	if rec.Code != http.StatusOK {
		t.Fatalf("buy failed: %d %s", rec.Code, rec.Body.String())
	}

	// A second login by the same name gets a fresh account.
	second := login(t, s, "alice")
	rec = doRequest(s, http.MethodGet, "/api/account", second, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("account failed: %d", rec.Code)
	}

	var resp struct {
		Account struct {
			Cash     string                     `json:"cash"`
			Holdings map[string]json.RawMessage `json:"holdings"`
		} `json:"account"`
	}
	decodeBody(t, rec, &resp)
	if resp.Account.Cash != "10000" {
		t.Errorf("cash = %s, want fresh 10000", resp.Account.Cash)
	}
	if len(resp.Account.Holdings) != 0 {
		t.Errorf("holdings = %v, want empty", resp.Account.Holdings)
	}
}

func TestAuthLogout(t *testing.T) {
	s := newTestServer(t, &fakeMarketClient{})
	token := login(t, s, "alice")

	rec := doRequest(s, http.MethodPost, "/api/auth/logout", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec.Code)
	}

	// The token is now useless: its session is gone.
	rec = doRequest(s, http.MethodGet, "/api/account", token, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status after logout = %d, want 401", rec.Code)
	}
}

func TestAuthLogout_RequiresAuth(t *testing.T) {
	s := newTestServer(t, &fakeMarketClient{})

	rec := doRequest(s, http.MethodPost, "/api/auth/logout", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
