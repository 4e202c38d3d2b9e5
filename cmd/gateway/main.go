package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ticketly-gateway/internal/api"
	"ticketly-gateway/internal/auth"
	"ticketly-gateway/internal/config"
	"ticketly-gateway/internal/gateway"
	"ticketly-gateway/internal/logger"
	"ticketly-gateway/internal/organizer"
	"ticketly-gateway/internal/store"
)

func main() {
	_ = godotenv.Load() // Loads .env file if present

	log := logger.NewLogger()
	defer log.Close()

	cfg := config.Load()

	client := api.NewClient(cfg.Backend.BaseURL, &http.Client{Timeout: cfg.Backend.Timeout}, nil, log)

	ctx := context.Background()
	provider, err := auth.NewProvider(ctx, cfg.Auth.Issuer, cfg.Auth.ClientID, cfg.Auth.ClientSecret, nil, log)
	if err != nil {
		log.Fatal("AUTH", "Failed to reach identity provider: "+err.Error())
	}

	localStore, err := store.Open(cfg.Store.Path, log)
	if err != nil {
		log.Fatal("STORE", "Failed to open local store: "+err.Error())
	}
	defer localStore.Close()

	gate := organizer.NewGate(client, localStore, log)
	gw := gateway.New(cfg, client, provider, gate, log)

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      gw.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("SERVER", "Ticketly gateway on "+cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("SERVER", "HTTP error: "+err.Error())
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_ = server.Shutdown(ctxShutdown)
	log.Info("SERVER", "Gateway shutdown complete")
}
