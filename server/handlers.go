package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jrsteele09/lms-mobile-gateway/apimodel"
	"github.com/jrsteele09/lms-mobile-gateway/internal/errors"
	"github.com/jrsteele09/lms-mobile-gateway/token"
)

const maxRequestBodyBytes = 1 << 20

func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, apimodel.StatusResponse{
			Status:  "ok",
			Message: s.config.GetAppName(),
		})
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, apimodel.HealthResponse{
			Status:    "healthy",
			MoodleURL: s.config.GetMoodleURL(),
			Debug:     s.config.IsDebug(),
		})
	}
}

// DocsHandler lists the registered routes. It is only mounted in debug mode.
func (s *Server) DocsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs := make([]apimodel.RouteResponse, 0, len(s.routes))
		for _, rt := range s.routes {
			docs = append(docs, apimodel.RouteResponse{
				Method:        rt.method,
				Path:          rt.path,
				Authenticated: rt.authenticated,
			})
		}
		writeJSON(w, http.StatusOK, docs)
	}
}

// decodeJSON reads a JSON request body into dst. An empty body leaves dst
// untouched when allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if err == io.EOF && allowEmpty {
			return nil
		}
		return fmt.Errorf("%w: %s", errors.ErrInvalidRequest, invalidRequestBodyDetail)
	}
	return nil
}

// pathID parses a numeric path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", errors.ErrInvalidRequest, name, raw)
	}
	return id, nil
}

// mustClaims returns the claims RequireAuth stored. Handlers behind
// RequireAuth always have them.
func mustClaims(r *http.Request) *token.Claims {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		panic("handler mounted without RequireAuth")
	}
	return claims
}

func requireField(value, name string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", errors.ErrInvalidRequest, name)
	}
	return nil
}
