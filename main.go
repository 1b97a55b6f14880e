package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"housing-report/config"
	"housing-report/handlers"
	"housing-report/models"
	"housing-report/services"
	"housing-report/storage"
	"housing-report/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("=== Housing price report starting ===")
	logger.Info("Config: dataset=%s | metrics=%s | http=%q",
		cfg.DatasetPath, cfg.MetricsSource, cfg.HTTPAddr)

	metrics, err := openMetricsSource(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open metrics source: %v", err)
		os.Exit(1)
	}
	defer metrics.Close()

	if cfg.MetricsExportPath != "" {
		if err := exportMetrics(ctx, metrics, cfg.MetricsExportPath); err != nil {
			logger.Warn("Metrics export failed: %v", err)
		} else {
			logger.Info("Model metrics exported to %s", cfg.MetricsExportPath)
		}
	}

	dataset := loadDataset(cfg.DatasetPath, logger)

	cache, err := services.NewSummaryCache(ctx, cfg.RedisURL, cfg.SummaryCacheTTL)
	if err != nil {
		logger.Warn("Summary cache disabled: %v", err)
	}
	defer cache.Close()

	policy := services.FormatPolicy{
		R2Decimals:    cfg.R2Decimals,
		ErrorDecimals: cfg.ErrorDecimals,
		Language:      language.English,
	}
	assembler := services.NewReportAssembler(logger, policy)
	pipeline := services.NewPipeline(assembler, metrics, cache, logger)
	slots := []handlers.ImageSlot{
		{Field: "correlation", Section: "correlation", Caption: "Correlation matrix of numeric variables", Path: cfg.CorrelationImage},
		{Field: "real_vs_pred", Section: "models", Caption: "Real vs predicted prices", Path: cfg.RealVsPredImage},
	}

	if cfg.HTTPAddr != "" {
		if err := serve(ctx, cfg.HTTPAddr, handlers.NewReportHandler(pipeline, dataset, slots, logger), logger); err != nil {
			logger.Error("HTTP server failed: %v", err)
			os.Exit(1)
		}
		return
	}

	images := make([]services.ImageRequest, len(slots))
	for i, s := range slots {
		images[i] = services.ImageRequest{Section: s.Section, Caption: s.Caption, Ref: services.ImageRef{Path: s.Path}}
	}

	report, err := pipeline.Run(ctx, dataset, images)
	if err != nil {
		logger.Error("Report assembly failed: %v", err)
		os.Exit(1)
	}
	services.NewPrinter(os.Stdout).Print(report)
	fmt.Printf("  Done. Best model: %s\n\n", report.Conclusions.Best.Name)
}

func openMetricsSource(ctx context.Context, cfg *config.Config, logger *utils.Logger) (storage.MetricsSource, error) {
	switch cfg.MetricsSource {
	case "builtin", "":
		return storage.StaticMetrics(models.DefaultMetrics()), nil
	case "csv":
		return storage.CSVMetrics{Path: cfg.MetricsCSVPath}, nil
	case "postgres":
		retry := &utils.RetryConfig{MaxAttempts: cfg.MaxRetries, BaseDelay: time.Second, Logger: logger}
		return storage.NewPostgresMetrics(ctx, cfg.DSN(), cfg.MetricsTable, retry)
	default:
		return nil, fmt.Errorf("unknown METRICS_SOURCE %q (want builtin, csv or postgres)", cfg.MetricsSource)
	}
}

func exportMetrics(ctx context.Context, src storage.MetricsSource, path string) error {
	records, err := src.FetchAll(ctx)
	if err != nil {
		return err
	}
	return storage.WriteMetricsCSV(path, records)
}

// loadDataset returns nil when the file is absent so the report shows the
// exploration placeholder instead.
func loadDataset(path string, logger *utils.Logger) *models.Dataset {
	ds, err := storage.LoadDataset(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn("Dataset %s not found; exploration section will be a placeholder", path)
		return nil
	}
	if err != nil {
		logger.Error("Failed to load dataset: %v", err)
		os.Exit(1)
	}
	logger.Info("Loaded dataset: %d records x %d variables", ds.Rows(), ds.NumColumns())
	return ds
}

func serve(ctx context.Context, addr string, h *handlers.ReportHandler, logger *utils.Logger) error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handlers.RegisterRoutes(router, h)

	srv := &http.Server{Addr: addr, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving report on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
