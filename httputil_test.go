package jquants

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func TestCacheDir_isolatesRuns(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"info":[{"Code":"72030"}]}`)
	}))
	defer srv.Close()

	old := CacheDir
	t.Cleanup(func() { CacheDir = old })

	// Same cache directory: the second fetch is answered from disk.
	CacheDir = t.TempDir()
	if _, err := NewClient(srv.URL).ListedInfo("tok123"); err != nil {
		t.Fatalf("ListedInfo() unexpected error = %v", err)
	}
	if _, err := NewClient(srv.URL).ListedInfo("tok123"); err != nil {
		t.Fatalf("ListedInfo() unexpected error = %v", err)
	}
	if calls != 1 {
		t.Errorf("server hit %d times, want 1 (second fetch must come from cache)", calls)
	}

	// A fresh cache directory must not see the other directory's entries:
	// a stale cached 200 answering for a different server would hide its
	// real responses.
	CacheDir = t.TempDir()
	if _, err := NewClient(srv.URL).ListedInfo("tok123"); err != nil {
		t.Fatalf("ListedInfo() unexpected error = %v", err)
	}
	if calls != 2 {
		t.Errorf("server hit %d times, want 2 (fresh cache dir must consult the server)", calls)
	}

	// Cache files land in the configured directory, not the system default.
	entries, err := os.ReadDir(CacheDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) == 0 {
		t.Error("no cache entry written to CacheDir")
	}
}
