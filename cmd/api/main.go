package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"bookinv/internal/book"
	"bookinv/internal/config"
	"bookinv/internal/exchange"
	"bookinv/internal/httpx"
	"bookinv/internal/pricing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load configuration")
	}
	setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool := mustOpenDB(ctx, cfg.DatabaseDSN)
	defer dbPool.Close()

	bookRepo := book.NewPostgresRepo(dbPool, cfg.DBTimeout)
	bookService := book.NewService(bookRepo)
	rateClient := exchange.NewClient(exchange.Config{
		APIKey:  cfg.Exchange.APIKey,
		BaseURL: cfg.Exchange.BaseURL,
		Timeout: cfg.Exchange.Timeout,
	})
	pricingService := pricing.NewService(bookService, rateClient)

	handler := newRouter(cfg, dbPool, bookService, rateClient, pricingService)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("starting server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}

// pinger is the part of pgxpool.Pool the readiness probe needs.
type pinger interface {
	Ping(ctx context.Context) error
}

func newRouter(cfg config.Config, db pinger, books *book.Service, rates exchange.Converter, prices *pricing.Service) http.Handler {
	bookHandler := book.NewHTTPHandler(books)
	exchangeHandler := exchange.NewHTTPHandler(rates)
	pricingHandler := pricing.NewHTTPHandler(prices)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONSuccess(w, r, map[string]string{"message": "Welcome to the Book Inventory API!"}, nil)
	})

	mux.HandleFunc("POST /books/{$}", bookHandler.Create)
	mux.HandleFunc("GET /books/{$}", bookHandler.List)
	mux.HandleFunc("GET /books/{id}", bookHandler.GetByID)
	mux.HandleFunc("PUT /books/{id}", bookHandler.Update)
	mux.HandleFunc("DELETE /books/{id}", bookHandler.Delete)
	mux.HandleFunc("GET /books/category/{category}", bookHandler.ListByCategory)
	mux.HandleFunc("GET /books/stock/below/{threshold}", bookHandler.ListBelowStock)

	mux.HandleFunc("POST /books/healthcheck/api/exchange-rate", exchangeHandler.Convert)
	mux.HandleFunc("POST /books/books/{id}/calculate-price", pricingHandler.CalculatePrice)

	rateLimit := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)

	var handler http.Handler = mux
	handler = httpx.CORSMiddleware(cfg.AllowedOrigins)(handler)
	handler = httpx.SecurityHeadersMiddleware(cfg.EnableHSTS)(handler)
	handler = httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes)(handler)
	handler = rateLimit.Middleware(handler)
	handler = httpx.RecoveryMiddleware(handler)
	handler = httpx.AccessLogMiddleware(handler)
	handler = httpx.RequestIDMiddleware(handler)
	return handler
}

func setupLogger(cfg config.Config) {
	if cfg.IsProduction() {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
		return
	}
	log.Logger = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(zerolog.DebugLevel)
}

func mustOpenDB(ctx context.Context, dsn string) *pgxpool.Pool {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create db pool")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatal().Err(err).Msg("cannot ping database")
	}
	log.Info().Msg("database connection OK")
	return pool
}
