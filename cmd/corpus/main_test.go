package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/newthinker/corpus/internal/corpus"
	"github.com/newthinker/corpus/internal/speech"
	"github.com/newthinker/corpus/internal/stats"
	"github.com/newthinker/corpus/internal/storage/archive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		cfgFile, debug, metricsFile, convertGzip, versionShort = "", false, "", false, false
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func seedCorpus(t *testing.T, root string) {
	t.Helper()
	backend, err := archive.NewLocalFS(root)
	require.NoError(t, err)
	store := corpus.New[speech.Corpus](backend)
	_, err = store.Save(context.Background(), speech.Corpus{
		{Audio: "208.wav", Transcript: "guten tag", Label: "de", Features: []float64{1, 2}},
		{Audio: "209.wav", Label: "ch", Features: []float64{3}},
	}, "sets/train.bin", false)
	require.NoError(t, err)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "corpus dev (go")
	assert.Contains(t, out, "commit ")

	out, err = execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestInspectAndConvert(t *testing.T) {
	root := t.TempDir()
	t.Setenv("CORPUS_STORE_ROOT", root)
	seedCorpus(t, root)

	out, err := execute(t, "inspect", "sets/train.bin")
	require.NoError(t, err)
	assert.Contains(t, out, "Entries:     2")
	assert.Contains(t, out, "Labels:      ch, de")

	out, err = execute(t, "convert", "sets/train.bin", "sets/train.bin", "--gzip")
	require.NoError(t, err)
	assert.Equal(t, "sets/train.bin.gz", strings.TrimSpace(out))
	assert.FileExists(t, filepath.Join(root, "sets", "train.bin.gz"))

	out, err = execute(t, "ls", "sets")
	require.NoError(t, err)
	assert.Equal(t, "sets/train.bin\nsets/train.bin.gz\n", out)
}

func TestInspect_Missing(t *testing.T) {
	t.Setenv("CORPUS_STORE_ROOT", t.TempDir())

	_, err := execute(t, "inspect", "does_not_exist.bin")
	assert.Error(t, err)
}

func TestMetricsFile(t *testing.T) {
	root := t.TempDir()
	t.Setenv("CORPUS_STORE_ROOT", root)
	seedCorpus(t, root)
	metricsPath := filepath.Join(t.TempDir(), "corpus.prom")

	_, err := execute(t, "inspect", "sets/train.bin", "--metrics-file", metricsPath)
	require.NoError(t, err)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "corpus_operations_total")
}

func TestStatsCmd(t *testing.T) {
	dir := t.TempDir()
	content := "epoch\ttrain_cost\ttrain_ler\tval_cost\tval_ler\n" +
		"0\t120.5\t0.91\t130.2\t0.95\n" +
		"1\t80.25\t0.62\t95.0\t0.70\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, stats.FileName), []byte(content), 0644))

	out, err := execute(t, "stats", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "80.2500")
	assert.Contains(t, out, "Best epoch: 1")
}
