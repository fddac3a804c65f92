package app

import (
	"fmt"

	"github.com/newthinker/corpus/internal/codec"
	"github.com/newthinker/corpus/internal/config"
	"github.com/newthinker/corpus/internal/corpus"
	"github.com/newthinker/corpus/internal/metrics"
	"github.com/newthinker/corpus/internal/storage/archive"
	"go.uber.org/zap"
)

// App wires the configured backend, codec, logger and metrics together
type App struct {
	cfg     *config.Config
	logger  *zap.Logger
	backend archive.Storage
	codec   codec.Codec
	metrics *metrics.Registry
}

// New creates a new App instance from a validated configuration
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c, err := codec.ByName(cfg.Store.Codec)
	if err != nil {
		return nil, err
	}

	backend, err := NewBackend(cfg.Store)
	if err != nil {
		return nil, err
	}

	logger.Debug("corpus store configured",
		zap.String("backend", cfg.Store.Backend),
		zap.String("codec", c.Name()),
		zap.Bool("strict", cfg.Store.Strict),
	)

	return &App{
		cfg:     cfg,
		logger:  logger,
		backend: backend,
		codec:   c,
		metrics: metrics.NewRegistry(),
	}, nil
}

// NewBackend creates the storage backend selected by cfg.Backend
func NewBackend(cfg config.StoreConfig) (archive.Storage, error) {
	switch cfg.Backend {
	case "localfs", "":
		return archive.NewLocalFS(cfg.Root)
	case "s3":
		return archive.NewS3(archive.S3Config{
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// Config returns the configuration the app was built from
func (a *App) Config() *config.Config {
	return a.cfg
}

// Logger returns the app logger
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Backend returns the storage backend
func (a *App) Backend() archive.Storage {
	return a.backend
}

// Metrics returns the metrics registry
func (a *App) Metrics() *metrics.Registry {
	return a.metrics
}

// OpenStore returns a corpus store for values of type T on the app backend
func OpenStore[T any](a *App) *corpus.Store[T] {
	return corpus.New[T](a.backend,
		corpus.WithCodec(a.codec),
		corpus.WithStrict(a.cfg.Store.Strict),
		corpus.WithLogger(a.logger.Named("store")),
		corpus.WithRecorder(a.metrics),
	)
}

// Close flushes the metrics textfile, if configured, and the logger
func (a *App) Close() error {
	var err error
	if path := a.cfg.Metrics.Textfile; path != "" {
		if werr := a.metrics.WriteTextfile(path); werr != nil {
			err = fmt.Errorf("writing metrics textfile: %w", werr)
		}
	}
	_ = a.logger.Sync()
	return err
}
