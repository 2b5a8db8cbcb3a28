package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/lms-mobile-gateway/auth"
	"github.com/jrsteele09/lms-mobile-gateway/identity"
	"github.com/jrsteele09/lms-mobile-gateway/internal/config"
	"github.com/jrsteele09/lms-mobile-gateway/moodle"
	"github.com/jrsteele09/lms-mobile-gateway/server"
	"github.com/jrsteele09/lms-mobile-gateway/token"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

const shutdownTimeout = 5 * time.Second

func main() {
	configPath := pflag.String("config", "", "path to a .env or .yaml configuration file")
	pflag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run(configPath string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	displayAppname(cfg.GetAppName())

	handler, err := buildServer(context.Background(), cfg, logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- listenAndServe(httpServer) }()

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(httpServer)
}

// buildServer wires the token manager, identity verification, the LMS
// client and the auth service into the HTTP server.
func buildServer(ctx context.Context, cfg config.Settings, logger zerolog.Logger) (*server.Server, error) {
	tokens, err := token.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("token manager: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := moodle.NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("upstream metrics: %w", err)
	}
	lms := moodle.New(cfg, moodle.WithMetrics(metrics))

	verifier := identity.NewVerifier(ctx, cfg)
	options := []auth.ServiceOption{auth.WithDevLogin(cfg.IsDebug())}
	if exchanger := identity.NewExchanger(cfg, verifier); exchanger != nil {
		options = append(options, auth.WithCodeExchanger(exchanger))
	}

	authService, err := auth.NewService(lms, tokens, verifier, options...)
	if err != nil {
		return nil, err
	}

	if cfg.GetGoogleClientID() == "" {
		logger.Warn().Msg("GOOGLE_CLIENT_ID is not set; Google login will reject every token")
	}
	if cfg.IsDebug() {
		logger.Warn().Msg("Debug mode is on; dev login and /docs are enabled")
	}
	if cfg.GetJWTSecret() == config.DefaultJWTSecret {
		logger.Error().Msg("JWT_SECRET is the public development default; anyone can forge session tokens")
	}
	logger.Info().
		Str("moodle_url", lms.Endpoint()).
		Dur("access_token_expiry", tokens.AccessTokenExpiry()).
		Bool("code_exchange", authService.CodeExchangeEnabled()).
		Msg("Gateway configured")

	return server.New(cfg, logger, server.Services{
		Auth:          authService,
		Authenticator: auth.NewAuthenticator(tokens),
		LMS:           lms,
		Metrics:       promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
	})
}

// newLogger configures the global zerolog logger and returns it. DEV gets a
// human readable console writer, other environments get JSON.
func newLogger(cfg config.Settings) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var logger zerolog.Logger
	if cfg.GetEnv() == "DEV" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	logger = logger.With().Timestamp().Str("app", cfg.GetAppName()).Logger()

	log.Logger = logger
	zerolog.DefaultContextLogger = &logger
	return logger
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
