package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"techstore/internal/cart"
	"techstore/internal/catalog"
	"techstore/internal/checkout"
	"techstore/internal/config"
	"techstore/internal/directory"
	"techstore/internal/httpx"
	"techstore/internal/ledger"
	"techstore/internal/seed"
	"techstore/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.ServiceName).Logger()

	data, err := seed.Load(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("load seed data")
	}
	log.Info().Int("products", len(data.Products)).Int("users", len(data.Users)).Msg("seed data loaded")

	// stores are constructed once and passed by handle; everything is
	// process-lifetime only
	products := catalog.New(data.Products)
	users := directory.New(data.Users)
	carts := cart.New(products)
	orders := ledger.New()
	coord := checkout.New(users, carts, orders, log)
	sessions := session.NewManager()

	router := httpx.NewRouter(sessions)
	delay := httpx.Delay{
		Enabled:     cfg.DelayEnabled,
		Duration:    time.Duration(cfg.DelaySeconds) * time.Second,
		Probability: 0.7,
	}
	(&httpx.ProductsHandler{Catalog: products, Delay: delay, Log: log}).Register(router)
	(&httpx.UsersHandler{Users: users}).Register(router)
	(&httpx.AuthHandler{Users: users, Sessions: sessions}).Register(router)
	(&httpx.CartHandler{Carts: carts}).Register(router)
	(&httpx.OrdersHandler{Orders: orders, Checkout: coord}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("HTTP listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
