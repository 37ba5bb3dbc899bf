package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/pocketbook/internal/app"
	"github.com/MrJamesThe3rd/pocketbook/internal/config"
	pbHttp "github.com/MrJamesThe3rd/pocketbook/internal/http"
	ledgerHandler "github.com/MrJamesThe3rd/pocketbook/internal/http/ledger"
	memberHandler "github.com/MrJamesThe3rd/pocketbook/internal/http/member"
	"github.com/MrJamesThe3rd/pocketbook/internal/http/private"
	"github.com/MrJamesThe3rd/pocketbook/internal/kv/backend"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel()})))

	store, closeStore, err := backend.Open(cfg)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	pocketbook := app.NewFromStore(store)
	if err := pocketbook.Load(context.Background()); err != nil {
		slog.Error("failed to load state", "error", err)
		os.Exit(1)
	}

	tokens := private.NewTokens(tokenSecret(cfg), cfg.Private.TokenTTL)

	router := pbHttp.New(
		cfg.Server.CORSOrigins,
		memberHandler.NewHandler(pocketbook),
		ledgerHandler.NewFamilyHandler(pocketbook),
		ledgerHandler.NewPrivateHandler(pocketbook),
		private.NewHandler(pocketbook, tokens),
		tokens,
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr, "backend", cfg.Store.Backend)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	slog.Info("shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

// tokenSecret falls back to a per-process random key, which invalidates
// issued private tokens on restart.
func tokenSecret(cfg *config.Config) []byte {
	if cfg.Private.TokenSecret != "" {
		return []byte(cfg.Private.TokenSecret)
	}

	slog.Warn("PRIVATE_TOKEN_SECRET not set, generating an ephemeral one")

	secret := make([]byte, 32)
	_, _ = rand.Read(secret)

	return secret
}
