// Package s3test provides an in-memory, path-style S3 endpoint for tests.
package s3test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/newthinker/corpus/internal/storage/archive"
)

// Bucket is the bucket every Server serves.
const Bucket = "experiments"

// Server holds objects in memory keyed by object key.
type Server struct {
	mu      sync.Mutex
	objects map[string][]byte
}

// New starts a Server and returns an S3Storage pointed at it with prefix.
// The server is closed when the test ends.
func New(t testing.TB, prefix string) (*Server, *archive.S3Storage) {
	t.Helper()
	srv := &Server{objects: map[string][]byte{}}
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	s, err := archive.NewS3(archive.S3Config{
		Bucket:    Bucket,
		Endpoint:  ts.URL,
		Region:    "us-east-1",
		AccessKey: "test",
		SecretKey: "test",
		Prefix:    prefix,
	})
	if err != nil {
		t.Fatalf("NewS3: %v", err)
	}
	return srv, s
}

// Object returns the stored bytes for key, or nil.
func (f *Server) Object(key string) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.objects[key]
}

func (f *Server) writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>%s</Code><Message>%s</Message></Error>`, code, code)
}

func (f *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, key, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	data, ok := f.objects[key]

	switch r.Method {
	case http.MethodPut:
		if r.Header.Get("If-None-Match") == "*" && ok {
			f.writeError(w, http.StatusPreconditionFailed, "PreconditionFailed")
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			f.writeError(w, http.StatusBadRequest, "IncompleteBody")
			return
		}
		f.objects[key] = body
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		if key == "" {
			f.list(w, r.URL.Query().Get("prefix"))
			return
		}
		if !ok {
			f.writeError(w, http.StatusNotFound, "NoSuchKey")
			return
		}
		w.Header().Set("Content-Length", fmt.Sprint(len(data)))
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	case http.MethodHead:
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Length", fmt.Sprint(len(data)))
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		delete(f.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *Server) list(w http.ResponseWriter, prefix string) {
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?><ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/"><Name>%s</Name><Prefix>%s</Prefix><KeyCount>%d</KeyCount><MaxKeys>1000</MaxKeys><IsTruncated>false</IsTruncated>`, Bucket, prefix, len(keys))
	for _, k := range keys {
		fmt.Fprintf(w, `<Contents><Key>%s</Key><Size>%d</Size></Contents>`, k, len(f.objects[k]))
	}
	fmt.Fprint(w, `</ListBucketResult>`)
}
