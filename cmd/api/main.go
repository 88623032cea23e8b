package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"mercadolibre-replica/internal/bootstrap"
	"mercadolibre-replica/internal/config"
	"mercadolibre-replica/internal/httpserver"
	"mercadolibre-replica/internal/idgen"
	productrepo "mercadolibre-replica/internal/repository/product"
	catalogsvc "mercadolibre-replica/internal/service/catalog"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	gin.SetMode(cfg.Mode)
	// Prices serialize as JSON numbers, matching the dataset format.
	decimal.MarshalJSONWithoutQuotes = true

	store := productrepo.NewMemory(logger)

	ctx := context.Background()
	if cfg.DatasetPath != "" {
		count, err := bootstrap.Load(ctx, cfg.DatasetPath, store, logger)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Printf("no dataset at %s, starting with an empty catalog", cfg.DatasetPath)
		case err != nil:
			logger.Fatalf("load dataset %s: %v", cfg.DatasetPath, err)
		default:
			logger.Printf("dataset loaded, %d products", count)
		}
	}

	ids := idgen.NewTimeRandom(cfg.CatalogPrefix)
	catalogService := catalogsvc.New(store, ids, cfg.CatalogPrefix, cfg.SiteID, logger)

	srv := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Catalog:     catalogService,
		CORSOrigins: cfg.CORSOrigins,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
