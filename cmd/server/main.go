package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/AlexaLeb/MoneyShare/internal/auth"
	"github.com/AlexaLeb/MoneyShare/internal/config"
	"github.com/AlexaLeb/MoneyShare/internal/server"
	"github.com/AlexaLeb/MoneyShare/internal/service"
	"github.com/AlexaLeb/MoneyShare/internal/storage/sqlite"
	"github.com/AlexaLeb/MoneyShare/pkg/logging"
)

func main() {
	cfg := config.Load(".env")
	logging.Setup(cfg.Log.Level)

	if cfg.JWT.Secret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Database.Path)

	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	handler := server.NewHandler(
		service.NewAuthService(authenticator, jwtManager),
		service.NewLedgerService(store),
		service.NewSettlementService(store),
		service.NewProvisionService(store),
	)
	e := server.New(handler, jwtManager)

	// HTTP/2 without TLS for clients that speak h2c
	h2cHandler := h2c.NewHandler(e, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
