// cmd/web/main.go
//
// Stellar Dominion front end – HTTP entry point.
//
// Start-up sequence
// -----------------
//
//  1. Load env vars (host-wide file → .env fallback).
//
//  2. Load configuration (defaults → .env → conf/global.yaml → STELLAR_ env).
//
//  3. Start daily rotating logger (tees to console when running in a TTY).
//
//  4. Build the game API client and the session cookie binder.
//
//  5. Build the chi router:
//
//     • RequestID, RealIP        – chi middleware
//     • request logger           – logger.Middleware
//     • Recoverer                – chi middleware
//     • security headers, HTTPS  – internal/middleware
//     • /metrics, /healthz       – ops endpoints
//     • components               – component.Mount
//
//  6. Serve until SIGINT/SIGTERM, then drain in-flight requests.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanizio/stellar-dominion/internal/component"
	"github.com/yanizio/stellar-dominion/internal/config"
	"github.com/yanizio/stellar-dominion/internal/cookies"
	"github.com/yanizio/stellar-dominion/internal/game"
	"github.com/yanizio/stellar-dominion/internal/logger"
	"github.com/yanizio/stellar-dominion/internal/middleware"
	"github.com/yanizio/stellar-dominion/internal/server"

	_ "github.com/yanizio/stellar-dominion/components/auth"
	_ "github.com/yanizio/stellar-dominion/components/planets"
)

const (
	serverEnvPath   = "/usr/local/etc/stellar-dominion/global.env"
	shutdownTimeout = 15 * time.Second
)

// loadEnv prefers the host-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(logger.Options{
		Dir:   cfg.Log.Dir,
		Level: cfg.Log.Level,
		Tee:   runningInTTY(),
	})
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	//
	// ── 1.  Shared dependencies ─────────────────────────────────────────
	//
	client, err := game.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	if err != nil {
		logOut.Fatalw("game api client", "err", err)
	}
	var api game.API = client
	if cfg.API.UniverseTTL > 0 {
		api = game.NewCachedAPI(client, cfg.API.UniverseSize, cfg.API.UniverseTTL)
	}
	logOut.Infow("game api ready", "base_url", cfg.API.BaseURL, "universe_ttl", cfg.API.UniverseTTL)

	jars, err := cookies.NewBinder(cookies.Options{
		Path:     cookies.DefaultPath,
		Secure:   cfg.Session.Secure,
		HTTPOnly: cfg.Session.HTTPOnly,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   cfg.Session.MaxAge,
		HashKey:  keyBytes(cfg.Session.HashKey),
		BlockKey: keyBytes(cfg.Session.BlockKey),
	})
	if err != nil {
		logOut.Fatalw("session cookies", "err", err)
	}
	logOut.Infow("session cookies ready", "signed", jars.Signed(), "secure", cfg.Session.Secure)

	//
	// ── 2.  Router ──────────────────────────────────────────────────────
	//
	r, err := newRouter(component.Deps{API: api, Cookies: jars}, cfg.HTTP.ForceHTTPS)
	if err != nil {
		logOut.Fatalw("mount components", "err", err)
	}
	for _, c := range component.All() {
		logOut.Debugw("component mounted", "name", c.Name())
	}

	//
	// ── 3.  Serve ───────────────────────────────────────────────────────
	//
	srv := server.New(cfg.HTTP.ListenAddr, r, cfg.API.Timeout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logOut.Fatalw("http server", "err", err)
		}
	}()

	<-ctx.Done()
	logOut.Infow("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logOut.Errorw("http shutdown", "err", err)
	}
}

// newRouter builds the middleware stack, the ops endpoints, and every
// registered component.
func newRouter(deps component.Deps, forceHTTPS bool) (chi.Router, error) {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(logger.Middleware)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Security)
	r.Use(middleware.ForceHTTPS(forceHTTPS))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	if err := component.Mount(r, deps); err != nil {
		return nil, err
	}
	return r, nil
}

// keyBytes returns nil for an empty key so the binder stays unsigned.
func keyBytes(s string) []byte {
	if s == "" {
		return nil
	}
	return []byte(s)
}
