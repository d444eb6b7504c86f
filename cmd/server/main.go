/*
main.go - Application entry point

PURPOSE:
  Starts the SAV engine HTTP server over a workbook-backed store.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Open the workbook store (missing workbooks mean "first run")
  3. Optionally seed the taxonomy from a legacy codification CSV
  4. Configure the HTTP router
  5. Serve with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -data    Data directory holding the workbooks (default: data)
  -seed    Legacy codification CSV; converted and saved once when the
           store holds no reference data yet

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait up to 30s for
  active requests, exit.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/geantfroid/sav-engine/api"
	"github.com/geantfroid/sav-engine/catalog"
	"github.com/geantfroid/sav-engine/seed"
	"github.com/geantfroid/sav-engine/store/excel"
)

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	dataDir := flag.String("data", "data", "data directory for the workbooks")
	seedCSV := flag.String("seed", "", "legacy codification CSV to convert on first run")
	flag.Parse()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	store, err := excel.New(*dataDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}

	if *seedCSV != "" {
		if err := seedFirstRun(store, *seedCSV, log); err != nil {
			log.Fatal().Err(err).Msg("failed to seed reference data")
		}
	}

	handler := api.NewHandler(store, log)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", *port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server stopped")
}

// seedFirstRun converts the legacy codification CSV and bootstraps the
// workbooks, but only when no reference data exists yet: an existing
// store is never overwritten by a seed.
func seedFirstRun(store *excel.Store, csvPath string, log zerolog.Logger) error {
	ctx := context.Background()
	_, err := store.LoadAll(ctx)
	if err == nil {
		log.Info().Msg("reference data present, skipping seed")
		return nil
	}
	if !errors.Is(err, catalog.ErrStoreMissing) {
		return err
	}

	snap, err := seed.FromFile(csvPath)
	if err != nil {
		return err
	}
	if err := store.Bootstrap(ctx, snap); err != nil {
		return err
	}
	log.Info().
		Int("families", len(snap.Families)).
		Int("products", len(snap.Products)).
		Int("faults", len(snap.Faults)).
		Int("causes", len(snap.Causes)).
		Int("fixes", len(snap.Fixes)).
		Msg("reference data seeded from codification csv")
	return nil
}
