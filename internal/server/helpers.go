package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/harmonk/papertrade/internal/clients/yahoo"
	"github.com/harmonk/papertrade/internal/models"
	"github.com/harmonk/papertrade/internal/services/ledger"
)

// ErrorResponse is the standard error format for REST API responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Stable error codes carried in the Code field of error responses.
const (
	CodeInvalidInput       = "invalid_input"
	CodeSymbolUnavailable  = "symbol_unavailable"
	CodeInsufficientFunds  = "insufficient_funds"
	CodeNoPosition         = "no_position"
	CodeInsufficientShares = "insufficient_shares"
	CodeUpstreamError      = "upstream_error"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message})
}

// WriteErrorWithCode writes a JSON error response with an error code.
func WriteErrorWithCode(w http.ResponseWriter, statusCode int, message, code string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message, Code: code})
}

// WriteServiceError maps service-layer errors onto HTTP status and stable
// error codes.
func WriteServiceError(w http.ResponseWriter, err error) {
	var apiErr *yahoo.APIError

	switch {
	case errors.Is(err, models.ErrInvalidInput):
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), CodeInvalidInput)
	case errors.Is(err, models.ErrSymbolUnavailable):
		WriteErrorWithCode(w, http.StatusNotFound, err.Error(), CodeSymbolUnavailable)
	case errors.Is(err, ledger.ErrNoPosition):
		WriteErrorWithCode(w, http.StatusNotFound, err.Error(), CodeNoPosition)
	case errors.Is(err, ledger.ErrInsufficientFunds):
		WriteErrorWithCode(w, http.StatusConflict, err.Error(), CodeInsufficientFunds)
	case errors.Is(err, ledger.ErrInsufficientShares):
		WriteErrorWithCode(w, http.StatusConflict, err.Error(), CodeInsufficientShares)
	case errors.As(err, &apiErr):
		WriteErrorWithCode(w, http.StatusBadGateway, err.Error(), CodeUpstreamError)
	default:
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

// RequireMethod validates the HTTP method and returns true if it matches.
// If it doesn't match, it writes a 405 response and returns false.
func RequireMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	return false
}

// DecodeJSON reads and decodes JSON from the request body into v.
// Returns false and writes a 400 error if decoding fails.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if r.Body == nil {
		WriteError(w, http.StatusBadRequest, "Request body is required")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return false
	}
	return true
}

// PathParam extracts a path parameter from the URL path.
// For a pattern like /api/market/quote/{symbol}, calling
// PathParam(r, "/api/market/quote/", "") extracts the {symbol} part.
func PathParam(r *http.Request, prefix, suffix string) string {
	path := r.URL.Path
	if !strings.HasPrefix(path, prefix) {
		return ""
	}
	rest := path[len(prefix):]
	if suffix != "" {
		idx := strings.Index(rest, suffix)
		if idx < 0 {
			return rest
		}
		return rest[:idx]
	}
	// No suffix — return up to the next /
	if idx := strings.Index(rest, "/"); idx >= 0 {
		return rest[:idx]
	}
	return rest
}
