package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"sales-dashboard/config"
	"sales-dashboard/models"
	"sales-dashboard/services"
	"sales-dashboard/storage"
	"sales-dashboard/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.NewLogger(utils.LevelInfo).Error("%v", err)
		os.Exit(1)
	}
	logger := utils.NewLogger(utils.ParseLevel(cfg.LogLevel))

	logger.Info("=== Retail Sales Dashboard starting ===")
	logger.Info("Config: source: %s | dataset: %s | pages: %s",
		cfg.DataSource, cfg.DatasetPath, strings.Join(cfg.Pages, ","))

	ds, err := loadDataset(cfg, logger)
	if err != nil {
		logger.Error("Failed to load dataset: %v", err)
		os.Exit(1)
	}
	if ds.Len() == 0 {
		logger.Error("Dataset is empty after cleaning. Exiting.")
		os.Exit(1)
	}
	bounds := ds.Bounds()
	logger.Info("Loaded %d rows, orders %s → %s", ds.Len(),
		bounds.Start.Format("2006-01-02"), bounds.End.Format("2006-01-02"))

	start, end, err := cfg.DateRange()
	if err != nil {
		logger.Warn("Ignoring date range: %v", err)
		start, end = time.Time{}, time.Time{}
	}
	filter := services.NewFilter(start, end).
		With(models.ColSegment, cfg.Segments...).
		With(models.ColRegion, cfg.Regions...).
		With(models.ColShipMode, cfg.ShipModes...).
		With(models.ColCategory, cfg.Categories...)

	var exporter services.TableExporter
	if cfg.ExportDir != "" {
		w, err := storage.NewCSVWriter(cfg.ExportDir)
		if err != nil {
			logger.Error("CSV export disabled: %v", err)
		} else {
			exporter = w
		}
	}

	dash := services.NewDashboardService(ds, logger)
	printer := services.NewPrinter(os.Stdout, cfg.Locale, exporter, logger)

	if cfg.PageEnabled("sales") {
		printer.PrintSales(dash.Sales(filter))
	}
	if cfg.PageEnabled("customers") {
		window := models.RankWindow{Min: cfg.RankMin, Max: cfg.RankMax}
		printer.PrintCustomers(dash.CustomerSpend(filter, window))
	}
	if cfg.PageEnabled("map") {
		printer.PrintStates(dash.StateMap(filter))
	}
	if cfg.PageEnabled("shipping") {
		printer.PrintShipping(dash.Shipping(filter, cfg.LateThresholdDays))
	}
	if cfg.PageEnabled("timeline") {
		g, ok := services.ParseGranularity(cfg.Granularity)
		if !ok {
			logger.Warn("Unknown granularity %q, using %s", cfg.Granularity, g)
		}
		opts := services.ResampleOptions{ByCategory: cfg.ByCategory, Continuous: cfg.ContinuousPeriods}
		printer.PrintTimeline(dash.SalesOverTime(filter, g, opts))
	}

	if cfg.ExportDir != "" && exporter != nil {
		logger.Info("Tables exported to %s", cfg.ExportDir)
	}
}

// loadDataset reads the configured source once and wraps it in a read-only Dataset.
func loadDataset(cfg *config.Config, logger *utils.Logger) (*services.Dataset, error) {
	if cfg.DataSource == "postgres" {
		return loadFromPostgres(cfg, logger)
	}
	raw, err := fileReader(cfg.DatasetPath).ReadAll()
	if err != nil {
		return nil, err
	}
	rows := services.NewCleaner(logger).Clean(raw.Rows)
	return services.NewDataset(rows, raw.Columns), nil
}

func fileReader(path string) storage.RawReader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return storage.NewXLSXReader(path)
	}
	return storage.NewCSVReader(path)
}

// loadFromPostgres optionally seeds the transactions table from the dataset
// file, then reads every row back from the database.
func loadFromPostgres(cfg *config.Config, logger *utils.Logger) (*services.Dataset, error) {
	store, err := storage.NewPostgresStore(cfg.DSN(), &utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   2 * time.Second,
		MaxDelay:    15 * time.Second,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return seedAndFetch(store, cfg, logger)
}

// seedAndFetch optionally replaces the stored rows with the cleaned dataset
// file and returns the stored rows as a Dataset.
func seedAndFetch(store storage.TransactionStore, cfg *config.Config, logger *utils.Logger) (*services.Dataset, error) {
	if cfg.SeedPostgres {
		raw, err := fileReader(cfg.DatasetPath).ReadAll()
		if err != nil {
			return nil, err
		}
		rows := services.NewCleaner(logger).Clean(raw.Rows)
		if err := store.Write(rows); err != nil {
			return nil, err
		}
		logger.Info("Seeded %d rows into PostgreSQL (table: transactions)", len(rows))
	}

	rows, err := store.FetchAll()
	if err != nil {
		return nil, err
	}
	return services.NewDataset(rows, nil), nil
}
