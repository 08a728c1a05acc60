package util

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

func TestEnsureDirAndExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if Exists(dir) {
		t.Fatal("Exists before EnsureDir")
	}
	if err := EnsureDir(dir); err != nil {
		t.Fatal(err)
	}
	if !Exists(dir) {
		t.Error("Exists after EnsureDir = false")
	}
}

func TestGetBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("sprite"))
	}))
	defer srv.Close()

	b, err := GetBytes(srv.URL + "/icon.png")
	if err != nil || string(b) != "sprite" {
		t.Errorf("GetBytes = %q, %v", b, err)
	}
	if _, err := GetBytes(srv.URL + "/missing"); err == nil {
		t.Error("GetBytes(404) succeeded")
	}
}
