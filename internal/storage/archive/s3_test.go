// internal/storage/archive/s3_test.go
package archive

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3Storage_ImplementsStorage(t *testing.T) {
	var _ Storage = (*S3Storage)(nil)
}

func TestS3Config_Key(t *testing.T) {
	tests := []struct {
		prefix string
		path   string
		want   string
	}{
		{"", "file.bin", "file.bin"},
		{"corpora", "file.bin", "corpora/file.bin"},
		{"corpora/", "file.bin", "corpora/file.bin"},
		{"corpora", "sets/./train.bin.gz", "corpora/sets/train.bin.gz"},
	}

	for _, tt := range tests {
		s := &S3Storage{prefix: strings.Trim(tt.prefix, "/")}
		got, err := s.key(tt.path)
		require.NoError(t, err)
		if got != tt.want {
			t.Errorf("key(%q) with prefix %q = %q, want %q", tt.path, tt.prefix, got, tt.want)
		}
	}
}

func TestS3Config_KeyInvalid(t *testing.T) {
	s := &S3Storage{prefix: "corpora"}
	for _, p := range []string{"", "../x.bin", "a/../../x.bin"} {
		_, err := s.key(p)
		assert.True(t, errors.Is(err, ErrInvalidPath), "key(%q): %v", p, err)
	}
}

func TestNewS3_RequiresBucket(t *testing.T) {
	_, err := NewS3(S3Config{Region: "us-east-1"})
	assert.Error(t, err)
}
