package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/harmonk/papertrade/internal/common"
	"github.com/harmonk/papertrade/internal/models"
)

// --- JWT helpers ---

// signJWT creates a signed HMAC-SHA256 JWT naming the session.
func signJWT(session *models.Session, config *common.AuthConfig) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid": session.ID,
		"sub": session.Username,
		"iss": "papertrade-server",
		"iat": now.Unix(),
		"exp": now.Add(config.GetTokenExpiry()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWTSecret))
}

// validateJWT parses and validates a JWT token string using the given secret.
func validateJWT(tokenString string, secret []byte) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// --- Auth handlers ---

// handleAuthLogin handles POST /api/auth/login. Any non-empty name is
// accepted; there are no passwords. Each login opens a fresh session with a
// fresh account at the configured starting cash.
func (s *Server) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Username string `json:"username"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	session, err := s.app.Sessions.Create(r.Context(), req.Username)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	token, err := signJWT(session, &s.app.Config.Auth)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sign session token")
		WriteError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"token":      token,
		"expires_in": int(s.app.Config.Auth.GetTokenExpiry().Seconds()),
		"account":    session.Account,
	})
}

// handleAuthLogout handles POST /api/auth/logout. The session and its
// account are discarded; the token becomes useless even before expiry.
func (s *Server) handleAuthLogout(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	session := sessionFromContext(r.Context())
	if session == nil {
		writeBearerChallenge(w, "authentication required")
		return
	}

	if err := s.app.Sessions.Delete(r.Context(), session.ID); err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
