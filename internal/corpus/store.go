// Package corpus persists datasets under named locations of a storage backend.
//
// A corpus is any value the configured codec can serialize. Locations ending
// in ".gz" hold gzip-compressed data; all other locations hold the codec's
// bytes directly.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/newthinker/corpus/internal/codec"
	"github.com/newthinker/corpus/internal/core"
	"github.com/newthinker/corpus/internal/storage/archive"
	"go.uber.org/zap"
)

// CompressedSuffix marks locations stored through a gzip envelope.
const CompressedSuffix = ".gz"

// Operation names reported to the Recorder.
const (
	OpSave = "save"
	OpLoad = "load"
)

// Recorder receives the outcome of every store operation.
type Recorder interface {
	RecordOperation(op, status string, bytes int64, duration time.Duration)
}

type options struct {
	codec    codec.Codec
	strict   bool
	logger   *zap.Logger
	recorder Recorder
}

// Option configures a Store.
type Option func(*options)

// WithCodec sets the serialization format. Defaults to codec.Default.
func WithCodec(c codec.Codec) Option {
	return func(o *options) { o.codec = c }
}

// WithStrict makes Save fail with core.ErrCorpusExists instead of
// overwriting an existing location.
func WithStrict(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// Store saves and loads corpora of type T. It keeps no reference to saved
// values and no state between calls; concurrent saves to the same location
// are not coordinated.
type Store[T any] struct {
	backend  archive.Storage
	codec    codec.Codec
	strict   bool
	logger   *zap.Logger
	recorder Recorder
}

// New creates a Store writing through backend.
func New[T any](backend archive.Storage, opts ...Option) *Store[T] {
	o := options{codec: codec.Default}
	for _, opt := range opts {
		opt(&o)
	}
	if o.codec == nil {
		o.codec = codec.Default
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return &Store[T]{
		backend:  backend,
		codec:    o.codec,
		strict:   o.strict,
		logger:   o.logger,
		recorder: o.recorder,
	}
}

// Codec returns the serialization format in use.
func (s *Store[T]) Codec() codec.Codec {
	return s.codec
}

// Strict reports whether Save refuses to overwrite.
func (s *Store[T]) Strict() bool {
	return s.strict
}

// IsCompressed reports whether filename selects the compressed read path.
func IsCompressed(filename string) bool {
	return strings.HasSuffix(filename, CompressedSuffix)
}

// CompressedName returns the location a compressed save of filename writes to.
func CompressedName(filename string) string {
	return filename + CompressedSuffix
}

// Save serializes corpus to filename, creating missing directories. When
// compressed is set the data goes through gzip and the location gets the
// CompressedSuffix. It returns the location written.
//
// An existing location is overwritten unless the store is strict. A failed
// save may leave a partially written location behind.
func (s *Store[T]) Save(ctx context.Context, corpus T, filename string, compressed bool) (_ string, err error) {
	start := time.Now()
	location := filename
	if compressed {
		location = CompressedName(filename)
	}

	var written int64
	defer func() {
		s.observe(OpSave, location, compressed, written, start, err)
	}()

	if filename == "" {
		return "", core.WrapError(core.ErrInvalidLocation, errors.New("empty filename"))
	}
	if !compressed && IsCompressed(filename) {
		return "", core.WrapError(core.ErrInvalidLocation,
			fmt.Errorf("%s: uncompressed corpus cannot use the %s suffix", filename, CompressedSuffix))
	}

	var w io.WriteCloser
	if s.strict {
		w, err = s.backend.CreateExclusive(ctx, location)
	} else {
		w, err = s.backend.Create(ctx, location)
	}
	if err != nil {
		return "", classify(location, err)
	}

	cw := &countingWriter{w: w}
	err = s.encode(cw, corpus, compressed)
	written = cw.n
	if cerr := w.Close(); cerr != nil && err == nil {
		err = classify(location, cerr)
	}
	if err != nil {
		return "", err
	}
	return location, nil
}

func (s *Store[T]) encode(cw *countingWriter, corpus T, compressed bool) error {
	var w io.Writer = cw
	var zw *gzip.Writer
	if compressed {
		zw = gzip.NewWriter(cw)
		w = zw
	}

	if err := s.codec.Encode(w, &corpus); err != nil {
		if zw != nil {
			zw.Close()
		}
		if cw.err != nil {
			return core.WrapError(core.ErrStorageFailed, cw.err)
		}
		return core.WrapError(core.ErrEncodeFailed, err)
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return core.WrapError(core.ErrStorageFailed, err)
		}
	}
	return nil
}

// Load reads filename and decodes it into a new T. Names ending in
// CompressedSuffix are read through gzip.
func (s *Store[T]) Load(ctx context.Context, filename string) (corpus T, err error) {
	start := time.Now()
	compressed := IsCompressed(filename)

	var read int64
	defer func() {
		s.observe(OpLoad, filename, compressed, read, start, err)
	}()

	if filename == "" {
		return corpus, core.WrapError(core.ErrInvalidLocation, errors.New("empty filename"))
	}

	r, err := s.backend.Open(ctx, filename)
	if err != nil {
		return corpus, classify(filename, err)
	}
	defer r.Close()

	cr := &countingReader{r: r}
	defer func() { read = cr.n }()

	var out T
	if err := s.decode(cr, &out, compressed); err != nil {
		if cr.err != nil {
			return corpus, core.WrapError(core.ErrStorageFailed, fmt.Errorf("%s: %w", filename, cr.err))
		}
		return corpus, core.WrapError(core.ErrDecodeFailed, fmt.Errorf("%s: %w", filename, err))
	}
	return out, nil
}

func (s *Store[T]) decode(cr *countingReader, out *T, compressed bool) error {
	if !compressed {
		return s.codec.Decode(cr, out)
	}

	zr, err := gzip.NewReader(cr)
	if err != nil {
		return err
	}
	defer zr.Close()

	if err := s.codec.Decode(zr, out); err != nil {
		return err
	}
	// Drain to EOF so the gzip trailer checksum is verified.
	_, err = io.Copy(io.Discard, zr)
	return err
}

// Exists reports whether a corpus is stored at filename.
func (s *Store[T]) Exists(ctx context.Context, filename string) (bool, error) {
	ok, err := s.backend.Exists(ctx, filename)
	if err != nil {
		return false, classify(filename, err)
	}
	return ok, nil
}

// Remove deletes the corpus stored at filename.
func (s *Store[T]) Remove(ctx context.Context, filename string) error {
	if err := s.backend.Delete(ctx, filename); err != nil {
		return classify(filename, err)
	}
	return nil
}

// List returns the stored locations under prefix.
func (s *Store[T]) List(ctx context.Context, prefix string) ([]string, error) {
	paths, err := s.backend.List(ctx, prefix)
	if err != nil {
		return nil, classify(prefix, err)
	}
	return paths, nil
}

func (s *Store[T]) observe(op, location string, compressed bool, n int64, start time.Time, err error) {
	duration := time.Since(start)
	fields := []zap.Field{
		zap.String("op_id", uuid.NewString()),
		zap.String("op", op),
		zap.String("location", location),
		zap.String("codec", s.codec.Name()),
		zap.Bool("compressed", compressed),
		zap.Int64("bytes", n),
		zap.Duration("duration", duration),
	}

	status := "ok"
	if err != nil {
		status = Status(err)
		s.logger.Warn("corpus operation failed", append(fields, zap.Error(err))...)
	} else {
		s.logger.Debug("corpus operation completed", fields...)
	}

	if s.recorder != nil {
		s.recorder.RecordOperation(op, status, n, duration)
	}
}

// Status returns the metric label for an operation error.
func Status(err error) string {
	if err == nil {
		return "ok"
	}
	var e *core.Error
	if errors.As(err, &e) {
		return strings.ToLower(e.Code)
	}
	return "error"
}

// classify maps backend errors onto the core error taxonomy.
func classify(location string, err error) error {
	cause := fmt.Errorf("%s: %w", location, err)
	switch {
	case errors.Is(err, archive.ErrInvalidPath):
		return core.WrapError(core.ErrInvalidLocation, cause)
	case errors.Is(err, fs.ErrNotExist):
		return core.WrapError(core.ErrCorpusNotFound, cause)
	case errors.Is(err, fs.ErrExist):
		return core.WrapError(core.ErrCorpusExists, cause)
	default:
		return core.WrapError(core.ErrStorageFailed, cause)
	}
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	if err != nil && c.err == nil {
		c.err = err
	}
	return n, err
}

type countingReader struct {
	r   io.Reader
	n   int64
	err error
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	if err != nil && err != io.EOF && c.err == nil {
		c.err = err
	}
	return n, err
}
