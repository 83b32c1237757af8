// Package archivetest builds in-memory ZIP archives for tests.
package archivetest

import (
	"archive/zip"
	"bytes"
	"testing"
)

// Entry is one file to put into a test archive
type Entry struct {
	Name string
	Body string
}

// Build returns the bytes of a ZIP archive holding entries in the given order
func Build(t testing.TB, entries ...Entry) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		if err != nil {
			t.Fatalf("create zip entry %s: %v", e.Name, err)
		}
		if _, err := w.Write([]byte(e.Body)); err != nil {
			t.Fatalf("write zip entry %s: %v", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}
