// Package main runs the quote comparison HTTP service: RFQ and quote
// intake, live comparison scoring, award commits and matrix exports.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Burtinsaw/PROC-sub000/internal/config"
	"github.com/Burtinsaw/PROC-sub000/internal/server"
	"github.com/Burtinsaw/PROC-sub000/internal/storage"
	"github.com/Burtinsaw/PROC-sub000/internal/storage/memory"
	"github.com/Burtinsaw/PROC-sub000/internal/storage/migrations"
	pgstore "github.com/Burtinsaw/PROC-sub000/internal/storage/postgres"
)

type stores struct {
	rfqs   storage.RFQStore
	quotes storage.QuoteStore
	prefs  storage.PreferenceStore
}

func main() {
	cfg := config.Load()

	// Flags override environment configuration.
	addr := flag.String("addr", cfg.Addr, "HTTP listen address")
	postgresDSN := flag.String("postgres-dsn", cfg.PostgresDSN, "PostgreSQL connection string")
	useMemory := flag.Bool("use-memory", cfg.UseMemory, "Use in-memory storage instead of PostgreSQL")
	baseCurrency := flag.String("base-currency", cfg.BaseCurrency, "Default RFQ base currency")
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	if !*useMemory && *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required (use --use-memory for in-memory storage)")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, cleanup, err := createStores(ctx, *postgresDSN, *useMemory)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	srv := server.New(server.Options{
		RFQStore:        st.rfqs,
		QuoteStore:      st.quotes,
		PreferenceStore: st.prefs,
		BaseCurrency:    *baseCurrency,
		PrefsDebounce:   cfg.PrefsDebounce,
		Logger:          logger,
	})
	defer srv.Close()

	httpServer := &http.Server{
		Addr:    *addr,
		Handler: srv.Router(cfg.CORSOrigins),
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("Shutdown error: %v", err)
		}
		cancel()
	}()

	logger.Printf("Listening on %s (memory=%v, base currency=%s)", *addr, *useMemory, *baseCurrency)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// createStores creates all required stores, applying migrations on Postgres.
func createStores(ctx context.Context, postgresDSN string, useMemory bool) (*stores, func(), error) {
	if useMemory {
		st := &stores{
			rfqs:   memory.NewRFQStore(),
			quotes: memory.NewQuoteStore(),
			prefs:  memory.NewPreferenceStore(),
		}
		return st, func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	st := &stores{
		rfqs:   pgstore.NewRFQStore(pool),
		quotes: pgstore.NewQuoteStore(pool),
		prefs:  pgstore.NewPreferenceStore(pool),
	}
	return st, pool.Close, nil
}
