package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jrsteele09/lms-mobile-gateway/auth"
	"github.com/jrsteele09/lms-mobile-gateway/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Services are the collaborators the HTTP layer translates requests to.
type Services struct {
	Auth          *auth.Service
	Authenticator *auth.Authenticator
	LMS           LMS
	Metrics       http.Handler // Prometheus exposition, optional
}

type route struct {
	method        string
	path          string
	authenticated bool
}

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	router   chi.Router
	routes   []route
	config   config.Config
	logger   zerolog.Logger
	services Services
}

func New(cfg config.Config, logger zerolog.Logger, services Services) (*Server, error) {
	if services.Auth == nil {
		return nil, fmt.Errorf("[Server New] auth service is required")
	}
	if services.Authenticator == nil {
		return nil, fmt.Errorf("[Server New] authenticator is required")
	}
	if services.LMS == nil {
		return nil, fmt.Errorf("[Server New] LMS client is required")
	}

	s := &Server{
		env:      cfg.GetEnv(),
		router:   chi.NewRouter(),
		config:   cfg,
		logger:   logger,
		services: services,
	}

	s.router.Use(s.StandardMiddleware()...)
	s.router.NotFound(s.notFoundHandler)
	s.router.MethodNotAllowed(s.methodNotAllowedHandler)

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// RegisterRouteHandler registers handler for a "METHOD /path" pattern.
func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.registerRoute(pattern, handler, false)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.registerRoute(pattern, http.HandlerFunc(handler), false)
}

// RegisterAuthenticatedRouteFunc registers handler behind RequireAuth.
func (s *Server) RegisterAuthenticatedRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.registerRoute(pattern, ChainMiddleware(http.HandlerFunc(handler), s.RequireAuth()), true)
}

func (s *Server) registerRoute(pattern string, handler http.Handler, authenticated bool) {
	method, path, found := strings.Cut(pattern, " ")
	if !found {
		panic(fmt.Sprintf("route pattern %q has no method", pattern))
	}
	s.routes = append(s.routes, route{method: method, path: path, authenticated: authenticated})
	s.router.Method(method, path, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, r := range s.routes {
		logRoute(r.method, r.path)
	}
}

func logRoute(method, path string) {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	log.Info().Msgf("[%-19s] %s", methodColour(method)+paddedMethod+colourReset, path)
}
