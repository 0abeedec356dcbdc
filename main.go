package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rafiqapp/rafiq/config"
	"github.com/rafiqapp/rafiq/models"
	"github.com/rafiqapp/rafiq/routes"
	"github.com/rafiqapp/rafiq/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.DailyActivity{}, &models.Friend{})

	r := routes.SetupRouter(db)

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		utils.Sugar.Infof("Starting server on port %s", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Sugar.Fatalf("server stopped with error: %v", err)
		}
	}()

	<-ctx.Done()
	utils.Sugar.Info("shutdown signal received, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Sugar.Errorf("HTTP server shutdown error: %v", err)
	} else {
		utils.Sugar.Info("HTTP server shutdown success")
	}
}
