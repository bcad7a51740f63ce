package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/alleytab/alleytab/internal/auth"
	"github.com/alleytab/alleytab/internal/config"
	"github.com/alleytab/alleytab/internal/middleware"
	"github.com/alleytab/alleytab/internal/service"
	"github.com/alleytab/alleytab/internal/storage/sqlite"
	"github.com/alleytab/alleytab/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authn := auth.NewPasswordAuthenticator(store)

	// Everything under /api is authenticated except the auth routes,
	// which mount on the root mux and win by pattern specificity.
	apiMux := http.NewServeMux()
	service.NewRosterService(store).Register(apiMux)
	service.NewGameService(store).Register(apiMux)
	service.NewStatsService(store).Register(apiMux)
	service.NewLedgerService(store).Register(apiMux)

	mux := http.NewServeMux()
	mux.Handle("/api/", middleware.RequireAuth(tokens, apiMux))
	service.NewAuthService(authn, tokens).Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	handler := middleware.Logging(middleware.Metrics(middleware.OptionalAuth(tokens, mux)))

	// h2c serves HTTP/2 without TLS for local and reverse-proxied use.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
