package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	if reg == nil {
		t.Fatal("expected non-nil registry")
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	// Should have go runtime metrics at minimum
	if len(mfs) == 0 {
		t.Error("expected some metrics to be registered")
	}
}

func TestRegistry_RecordOperation(t *testing.T) {
	reg := NewRegistry()

	reg.RecordOperation("save", "ok", 128, 10*time.Millisecond)
	reg.RecordOperation("save", "ok", 64, 5*time.Millisecond)
	reg.RecordOperation("load", "corpus_not_found", 0, time.Millisecond)

	if got := testutil.ToFloat64(reg.operationsTotal.WithLabelValues("save", "ok")); got != 2 {
		t.Errorf("expected 2 saves, got %v", got)
	}
	if got := testutil.ToFloat64(reg.operationsTotal.WithLabelValues("load", "corpus_not_found")); got != 1 {
		t.Errorf("expected 1 failed load, got %v", got)
	}
	if got := testutil.ToFloat64(reg.bytesTotal.WithLabelValues("save")); got != 192 {
		t.Errorf("expected 192 bytes saved, got %v", got)
	}
	if got := testutil.CollectAndCount(reg.operationDuration); got != 2 {
		t.Errorf("expected 2 duration series, got %d", got)
	}
}

func TestRegistry_WriteTextfile(t *testing.T) {
	reg := NewRegistry()
	reg.RecordOperation("load", "ok", 42, time.Millisecond)

	path := filepath.Join(t.TempDir(), "corpus.prom")
	if err := reg.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `corpus_operations_total{op="load",status="ok"} 1`) {
		t.Errorf("textfile missing operation counter:\n%s", data)
	}
}
