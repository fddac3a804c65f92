// internal/speech/types.go
package speech

import "sort"

// Entry is one labeled utterance of a speech corpus.
type Entry struct {
	Audio      string    `msgpack:"audio"`      // source audio file, relative to the corpus
	Transcript string    `msgpack:"transcript"` // spoken text
	Label      string    `msgpack:"label"`
	Features   []float64 `msgpack:"features"`
}

// Corpus is an ordered collection of entries.
type Corpus []Entry

// Summary describes the shape of a corpus.
type Summary struct {
	Entries     int
	Labels      []string
	MinFeatures int
	MaxFeatures int
	Transcribed int
}

// Summarize computes a Summary of c.
func Summarize(c Corpus) Summary {
	s := Summary{Entries: len(c)}
	seen := make(map[string]struct{})

	for i, e := range c {
		n := len(e.Features)
		if i == 0 || n < s.MinFeatures {
			s.MinFeatures = n
		}
		if n > s.MaxFeatures {
			s.MaxFeatures = n
		}
		if e.Transcript != "" {
			s.Transcribed++
		}
		if _, ok := seen[e.Label]; !ok {
			seen[e.Label] = struct{}{}
			s.Labels = append(s.Labels, e.Label)
		}
	}

	sort.Strings(s.Labels)
	return s
}
