package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KromaEnergia/api-crm/internal/auth"
	"github.com/KromaEnergia/api-crm/internal/config"
	"github.com/KromaEnergia/api-crm/internal/server"
	"github.com/KromaEnergia/api-crm/internal/utils/db"
)

func main() {
	cfg, err := config.Load()
	logger := config.NewLogger(cfg)
	if err != nil {
		logger.WithError(err).Fatal("configuração inválida")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.GetDB(ctx, cfg.DB, logger)
	if err != nil {
		logger.WithError(err).Fatal("erro ao conectar no banco")
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(database); err != nil {
			logger.WithError(err).Fatal("erro no AutoMigrate")
		}
	}

	handler := server.NewRouter(server.Deps{
		DB:     database,
		Config: cfg,
		Logger: logger,
		Issuer: auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.WithField("addr", srv.Addr).Info("servidor rodando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("erro no servidor HTTP")
		}
	}()

	<-ctx.Done()
	logger.Info("encerrando servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("erro ao encerrar servidor")
	}
	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
