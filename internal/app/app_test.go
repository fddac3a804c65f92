package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/newthinker/corpus/internal/config"
	"github.com/newthinker/corpus/internal/core"
	"github.com/newthinker/corpus/internal/speech"
	"github.com/newthinker/corpus/internal/storage/archive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Defaults()
	cfg.Store.Root = filepath.Join(t.TempDir(), "corpora")
	return cfg
}

func TestNew_LocalFS(t *testing.T) {
	cfg := testConfig(t)

	a, err := New(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &archive.LocalFS{}, a.Backend())
	assert.DirExists(t, cfg.Store.Root)
	assert.NotNil(t, a.Metrics())
	assert.NotNil(t, a.Logger())
}

func TestNew_S3(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store.Backend = "s3"
	cfg.Store.S3.Bucket = "experiments"
	cfg.Store.S3.Endpoint = "http://localhost:9000"

	a, err := New(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &archive.S3Storage{}, a.Backend())
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store.Codec = "pickle"

	_, err := New(cfg, nil)
	assert.True(t, errors.Is(err, core.ErrConfigInvalid), "got %v", err)
}

func TestOpenStore_UsesConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store.Codec = "gob"
	cfg.Store.Strict = true

	a, err := New(cfg, nil)
	require.NoError(t, err)

	store := OpenStore[speech.Corpus](a)
	assert.Equal(t, "gob", store.Codec().Name())
	assert.True(t, store.Strict())

	ctx := context.Background()
	want := speech.Corpus{{Audio: "208.wav", Label: "a", Features: []float64{1, 2}}}
	loc, err := store.Save(ctx, want, "demo.bin", true)
	require.NoError(t, err)

	got, err := store.Load(ctx, loc)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestClose_WritesTextfile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.Textfile = filepath.Join(t.TempDir(), "corpus.prom")

	a, err := New(cfg, nil)
	require.NoError(t, err)

	store := OpenStore[speech.Corpus](a)
	_, err = store.Load(context.Background(), "missing.bin")
	require.Error(t, err)

	require.NoError(t, a.Close())
	data, err := os.ReadFile(cfg.Metrics.Textfile)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `status="corpus_not_found"`))
}
