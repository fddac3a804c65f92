// internal/speech/types_test.go
package speech

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	c := Corpus{
		{Audio: "208.wav", Transcript: "guten tag", Label: "b", Features: []float64{1, 2, 3}},
		{Audio: "209.wav", Label: "a", Features: []float64{1}},
		{Audio: "210.wav", Transcript: "tschüss", Label: "b", Features: []float64{1, 2, 3, 4}},
	}

	s := Summarize(c)
	assert.Equal(t, 3, s.Entries)
	assert.Equal(t, []string{"a", "b"}, s.Labels)
	assert.Equal(t, 1, s.MinFeatures)
	assert.Equal(t, 4, s.MaxFeatures)
	assert.Equal(t, 2, s.Transcribed)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, Summary{}, s)
}
