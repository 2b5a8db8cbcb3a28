package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/lms-mobile-gateway/apimodel"
	"github.com/jrsteele09/lms-mobile-gateway/internal/errors"
	"github.com/rs/zerolog/hlog"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"
)

// Error codes returned in the "error" field.
const (
	codeUnauthorized     = "unauthorized"
	codeRefreshRejected  = "refresh_rejected"
	codeInvalidIDToken   = "invalid_identity_assertion"
	codeNotRegistered    = "identity_not_registered"
	codeDevLoginDisabled = "dev_login_disabled"
	codeNotFound         = "not_found"
	codeInvalidRequest   = "invalid_request"
	codeUnsuccessful     = "unsuccessful"
	codeUpstream         = "upstream_error"
	codeNotImplemented   = "not_implemented"
	codeMethodNotAllowed = "method_not_allowed"
	codeInternal         = "internal_error"
)

const (
	upstreamFailureDetail    = "The LMS could not complete the request"
	invalidRequestBodyDetail = "Request body is not valid JSON"
	internalFailureDetail    = "Internal server error"
)

// statusForError maps a domain error to its HTTP status, error code and
// client facing detail.
func statusForError(err error) (int, string, string) {
	switch {
	case errors.Is(err, errors.ErrAuthenticationFailure):
		return http.StatusUnauthorized, codeUnauthorized, "Invalid or expired token"
	case errors.Is(err, errors.ErrRefreshRejected):
		return http.StatusUnauthorized, codeRefreshRejected, "Invalid or expired refresh token"
	case errors.Is(err, errors.ErrInvalidIdentityAssertion):
		return http.StatusUnauthorized, codeInvalidIDToken, "Invalid Google token"
	case errors.Is(err, errors.ErrIdentityNotRegistered):
		return http.StatusForbidden, codeNotRegistered, "User is not registered in Moodle. Contact the administrator."
	case errors.Is(err, errors.ErrDevLoginDisabled):
		return http.StatusForbidden, codeDevLoginDisabled, "Dev login is only available in debug mode"
	case errors.Is(err, errors.ErrNotFound):
		return http.StatusNotFound, codeNotFound, "Not found"
	case errors.Is(err, errors.ErrInvalidRequest):
		return http.StatusBadRequest, codeInvalidRequest, err.Error()
	case errors.Is(err, errors.ErrUnsuccessful):
		return http.StatusBadRequest, codeUnsuccessful, err.Error()
	case errors.Is(err, errors.ErrCodeExchangeDisabled):
		return http.StatusNotImplemented, codeNotImplemented, "Authorization code login is not configured"
	case errors.Is(err, errors.ErrUpstreamUnavailable), errors.Is(err, errors.ErrUpstreamApplication):
		return http.StatusBadGateway, codeUpstream, upstreamFailureDetail
	default:
		return http.StatusInternalServerError, codeInternal, internalFailureDetail
	}
}

// writeError answers with the mapping of err and logs it.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, detail := statusForError(err)

	logger := hlog.FromRequest(r)
	event := logger.Debug()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).Int("status", status).Str("code", code).Msg("request failed")

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", bearerChallenge)
	}
	writeJSONError(w, code, detail, status)
}

func writeJSONError(w http.ResponseWriter, errorCode, detail string, statusCode int) {
	writeJSON(w, statusCode, apimodel.ErrorResponse{
		Error:  errorCode,
		Detail: detail,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSONError(w, codeNotFound, "Not found", http.StatusNotFound)
}

func (s *Server) methodNotAllowedHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSONError(w, codeMethodNotAllowed, "Method not allowed", http.StatusMethodNotAllowed)
}
