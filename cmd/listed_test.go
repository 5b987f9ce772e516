package cmd

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"

	"github.com/etnz/jquants"
)

// stubAPI is a minimal J-Quants stand-in serving the three endpoints the
// listed flow touches.
func stubAPI(t *testing.T, authStatus int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token/auth_user":
			if authStatus != http.StatusOK {
				w.WriteHeader(authStatus)
				fmt.Fprint(w, `{"message":"The incoming mailaddress or password is incorrect."}`)
				return
			}
			fmt.Fprint(w, `{"refreshToken":"r1"}`)
		case "/token/auth_refresh":
			fmt.Fprint(w, `{"idToken":"tok123"}`)
		case "/listed/info":
			fmt.Fprint(w, `{"info":[{"Code":"7203","CompanyName":"トヨタ自動車","CompanyNameEnglish":"Toyota Motor","Sector17CodeName":"Transportation","MarketCode":"Prime","ListingDate":"1949-05-16"}]}`)
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
}

// setup points the command globals at the stub and a fresh output dir, and
// restores them when the test ends.
func setup(t *testing.T, srv *httptest.Server) (dir string) {
	t.Helper()
	dir = t.TempDir()
	oldURL, oldDir, oldSource := *baseURL, *outDir, Source
	oldCache := jquants.CacheDir
	*baseURL, *outDir = srv.URL, dir
	Source = StaticSource{Email: "user@example.com", Password: "secret"}
	jquants.CacheDir = t.TempDir()
	t.Cleanup(func() {
		*baseURL, *outDir, Source = oldURL, oldDir, oldSource
		jquants.CacheDir = oldCache
		srv.Close()
	})
	return dir
}

func TestListed_endToEnd(t *testing.T) {
	dir := setup(t, stubAPI(t, http.StatusOK))

	status := (&listedCmd{}).Execute(context.Background(), flag.NewFlagSet("listed", flag.ContinueOnError))
	if status != subcommands.ExitSuccess {
		t.Fatalf("listed returned %v, want success", status)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var txt, csvFile string
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".txt":
			txt = filepath.Join(dir, e.Name())
		case ".csv":
			csvFile = filepath.Join(dir, e.Name())
		}
	}
	if txt == "" || csvFile == "" {
		t.Fatalf("expected a txt and a csv file, got %v", entries)
	}
	if !strings.HasPrefix(filepath.Base(txt), "listed_stocks_") {
		t.Errorf("txt file name = %q", filepath.Base(txt))
	}

	content, err := os.ReadFile(txt)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"7203", "トヨタ自動車", "Toyota Motor", "Transportation", "Prime", "1949-05-16"} {
		if !strings.Contains(string(content), want) {
			t.Errorf("txt output does not contain %q", want)
		}
	}

	csvContent, err := os.ReadFile(csvFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(csvContent), "Code,CompanyName") {
		t.Error("csv output has no header row")
	}
	if !strings.Contains(string(csvContent), "7203,トヨタ自動車,Toyota Motor,Transportation,Prime,1949-05-16") {
		t.Error("csv output has no Toyota row")
	}
}

func TestListed_authFailure(t *testing.T) {
	dir := setup(t, stubAPI(t, http.StatusUnauthorized))

	status := (&listedCmd{}).Execute(context.Background(), flag.NewFlagSet("listed", flag.ContinueOnError))
	if status != subcommands.ExitFailure {
		t.Fatalf("listed returned %v, want failure", status)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("output files were written after a failed login: %v", entries)
	}
}
