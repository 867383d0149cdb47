// Package container provides dependency injection for the ledger.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"
	"io"
	"os"

	"fjacquet/butterfly-ledger/internal/categorizer"
	"fjacquet/butterfly-ledger/internal/config"
	"fjacquet/butterfly-ledger/internal/fileutils"
	"fjacquet/butterfly-ledger/internal/ledger"
	"fjacquet/butterfly-ledger/internal/logging"
	"fjacquet/butterfly-ledger/internal/notify"
	"fjacquet/butterfly-ledger/internal/report"
	"fjacquet/butterfly-ledger/internal/service"
	"fjacquet/butterfly-ledger/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	dataDir     string
	ledgerStore *store.SQLiteStore
	store       *store.CategoryStore
	categorizer *categorizer.Categorizer
	notifier    notify.Notifier
	renderer    *report.Renderer
	service     *service.LedgerService
}

// Options override parts of the wiring, mostly for tests.
type Options struct {
	Logger   logging.Logger
	Output   io.Writer
	Notifier notify.Notifier
}

// NewContainer creates and wires all application dependencies, writing
// rendered output to stdout.
func NewContainer(cfg *config.Config) (*Container, error) {
	return NewContainerWithOptions(cfg, Options{})
}

// NewContainerWithOptions is NewContainer with overrides.
func NewContainerWithOptions(cfg *config.Config, opts Options) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Create logger first as it's needed by other components
	logger := opts.Logger
	if logger == nil {
		logger = config.NewLogger(cfg)
	}

	dataDir, err := fileutils.ResolveDataDir(cfg.Data.Directory)
	if err != nil {
		return nil, err
	}
	if err := fileutils.EnsureDirectoryExists(dataDir); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := fileutils.ResolveInDir(dataDir, cfg.Data.Database)
	ledgerStore, err := store.Open(dbPath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}

	categoryStore := store.NewCategoryStore(dataDir, cfg.Data.KeywordsFile, cfg.Data.MappingsFile, logger)
	cat := categorizer.NewCategorizer(categoryStore, logger, cfg.Categorization.AutoLearn)

	notifier := opts.Notifier
	if notifier == nil {
		notifier = newNotifier(cfg, logger)
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	renderer, err := report.NewRenderer(cfg.Output.Format, out, logger)
	if err != nil {
		_ = ledgerStore.Close()
		return nil, err
	}

	predictor := ledger.NewPredictor(ledger.PredictorOptions{
		WindowDays:   cfg.Prediction.WindowDays,
		MinPurchases: cfg.Prediction.MinPurchases,
		LookbackDays: cfg.Prediction.LookbackDays,
		GenericTerms: cfg.Prediction.GenericTerms,
	})

	svc := service.NewLedgerService(ledgerStore, cat, notifier, service.Options{
		InitialBudget: cfg.InitialBudget(),
		Predictor:     predictor,
		LeadDays:      cfg.Reminders.LeadDays,
		Delimiter:     cfg.DelimiterRune(),
	}, logger)

	logger.Debug("Container initialized successfully",
		logging.Field{Key: logging.FieldDatabase, Value: dbPath},
		logging.Field{Key: logging.FieldBackend, Value: cfg.Notify.Backend})

	return &Container{
		logger:      logger,
		config:      cfg,
		dataDir:     dataDir,
		ledgerStore: ledgerStore,
		store:       categoryStore,
		categorizer: cat,
		notifier:    notifier,
		renderer:    renderer,
		service:     svc,
	}, nil
}

// newNotifier picks the reminder backend. The AMQP connection is opened on
// the first reminder.
func newNotifier(cfg *config.Config, logger logging.Logger) notify.Notifier {
	if cfg.Notify.Backend != config.NotifyBackendAMQP {
		return notify.NewLogNotifier(logger)
	}
	return notify.NewLazy(func() (notify.Notifier, error) {
		return notify.NewAMQPNotifier(cfg.Notify.AMQPURL, cfg.Notify.Exchange, cfg.Notify.Queue, logger)
	})
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetDataDir returns the resolved data directory.
func (c *Container) GetDataDir() string {
	return c.dataDir
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetStore returns the category rules store.
func (c *Container) GetStore() *store.CategoryStore {
	return c.store
}

// GetLedgerStore returns the SQLite ledger store.
func (c *Container) GetLedgerStore() *store.SQLiteStore {
	return c.ledgerStore
}

// GetNotifier returns the reminder notifier.
func (c *Container) GetNotifier() notify.Notifier {
	return c.notifier
}

// GetRenderer returns the output renderer.
func (c *Container) GetRenderer() *report.Renderer {
	return c.renderer
}

// GetService returns the ledger service.
func (c *Container) GetService() *service.LedgerService {
	return c.service
}

// Close releases the broker connection and the database.
func (c *Container) Close() error {
	var firstErr error
	if err := c.notifier.Close(); err != nil {
		c.logger.WithError(err).Warn("Failed to close notifier")
		firstErr = err
	}
	if err := c.ledgerStore.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	c.logger.Debug("Container closed")
	return firstErr
}
