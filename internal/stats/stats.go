// Package stats reads the per-epoch training statistics written next to a
// trained model.
package stats

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/newthinker/corpus/internal/core"
)

// FileName is the statistics file inside a training run directory.
const FileName = "stats.tsv"

// columns: epoch, train_cost, train_ler, val_cost, val_ler
const numColumns = 5

// Epoch holds the losses recorded after one training epoch.
type Epoch struct {
	Epoch     int
	TrainCost float64 // CTC loss on the training set
	TrainLER  float64 // label error rate on the training set
	ValCost   float64
	ValLER    float64
}

// Series is the ordered list of epochs of one training run.
type Series struct {
	Header []string
	Epochs []Epoch
}

// LoadDir reads FileName from a training run directory.
func LoadDir(dir string) (*Series, error) {
	f, err := os.Open(filepath.Join(dir, FileName))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a tab-separated statistics file with one header line.
func Parse(r io.Reader) (*Series, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, core.WrapError(core.ErrStatsInvalid, errors.New("missing header"))
	}
	if err != nil {
		return nil, core.WrapError(core.ErrStatsInvalid, err)
	}
	s := &Series{Header: append([]string(nil), header...)}

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, core.WrapError(core.ErrStatsInvalid, err)
		}
		line, _ := cr.FieldPos(0)
		e, err := parseRecord(record)
		if err != nil {
			return nil, core.WrapError(core.ErrStatsInvalid, fmt.Errorf("line %d: %w", line, err))
		}
		s.Epochs = append(s.Epochs, e)
	}

	return s, nil
}

func parseRecord(record []string) (Epoch, error) {
	if len(record) < numColumns {
		return Epoch{}, fmt.Errorf("expected %d columns, got %d", numColumns, len(record))
	}

	epoch, err := strconv.Atoi(strings.TrimSpace(record[0]))
	if err != nil {
		return Epoch{}, fmt.Errorf("epoch: %w", err)
	}

	var values [numColumns - 1]float64
	for i := range values {
		v, err := strconv.ParseFloat(strings.TrimSpace(record[i+1]), 64)
		if err != nil {
			return Epoch{}, fmt.Errorf("column %d: %w", i+2, err)
		}
		values[i] = v
	}

	return Epoch{
		Epoch:     epoch,
		TrainCost: values[0],
		TrainLER:  values[1],
		ValCost:   values[2],
		ValLER:    values[3],
	}, nil
}

// Best returns the epoch with the lowest validation cost.
func (s *Series) Best() (Epoch, bool) {
	if len(s.Epochs) == 0 {
		return Epoch{}, false
	}
	best := s.Epochs[0]
	for _, e := range s.Epochs[1:] {
		if e.ValCost < best.ValCost {
			best = e
		}
	}
	return best, true
}

// Cost returns the training and validation cost curves.
func (s *Series) Cost() (train, val []float64) {
	for _, e := range s.Epochs {
		train = append(train, e.TrainCost)
		val = append(val, e.ValCost)
	}
	return train, val
}

// LER returns the training and validation label error rate curves.
func (s *Series) LER() (train, val []float64) {
	for _, e := range s.Epochs {
		train = append(train, e.TrainLER)
		val = append(val, e.ValLER)
	}
	return train, val
}
