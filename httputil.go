package jquants

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/jquants/date"
)

// contains http utils to deal with the remote API.

// CacheDir is the directory holding the cached HTTP responses. It defaults
// to the system temp directory; tests point it at a scratch directory so
// runs stay isolated and leave nothing behind.
var CacheDir = os.TempDir()

// diskCache implements a simple disk cache for HTTP responses
type diskCache struct {
	base http.RoundTripper
}

// RoundTrip implements the http.RoundTripper interface. It checks for a
// cached response on disk first. If a fresh cached response is not found, it
// proceeds with the actual HTTP request and caches the new response if it's
// successful.
func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// get from disk
	// diskcache implements a unique key per day, so the local tmp expires every day.
	key := fmt.Sprintf("%s %s %s", date.Today().String(), req.Method, req.URL.String())
	key = fmt.Sprintf("jqx-%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache

	err = c.put(key, resp)
	if err != nil {
		log.Printf("cache write err (ignored): %v\n", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	file := filepath.Join(CacheDir, key)
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	file := filepath.Join(CacheDir, key)

	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}

	_, err = f.Write(content)
	f.Close()
	return err
}

// newDailyCachingClient returns an http.Client that uses a disk cache where
// entries expire daily.
func newDailyCachingClient() *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{base: http.DefaultTransport}
	return client
}

// wget performs an HTTP GET with the given headers and returns the status
// and the raw body. Non-2xx statuses are returned, not turned into errors,
// so callers can map them to the right error kind.
func wget(client *http.Client, addr string, header http.Header) (status int, payload []byte, err error) {
	req, err := http.NewRequest(http.MethodGet, addr, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("cannot create http request %q: %w", addr, err)
	}
	req.Header = header

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("cannot execute http request: %w", err)
	}
	defer resp.Body.Close()

	// reading in a buffer to be able to print the json in debug mode
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return 0, nil, fmt.Errorf("cannot read receiving http body: %w", err)
	}
	return resp.StatusCode, buf.Bytes(), nil
}

// wpost performs an HTTP POST with an optional JSON body, with the same
// status handling as wget.
func wpost(client *http.Client, addr string, body any) (status int, payload []byte, err error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("cannot marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(http.MethodPost, addr, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("cannot create http request %q: %w", addr, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("cannot execute http request: %w", err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return 0, nil, fmt.Errorf("cannot read receiving http body: %w", err)
	}
	return resp.StatusCode, buf.Bytes(), nil
}

// apiMessage extracts the "message" field the API puts in error bodies.
// Returns the raw payload when there is no such field, truncated to keep
// error strings short.
func apiMessage(payload []byte) string {
	var jobj any
	if err := json.Unmarshal(payload, &jobj); err == nil {
		if jval, err := jsonpath.Get("$.message", jobj); err == nil {
			if msg, ok := jval.(string); ok {
				return msg
			}
		}
	}
	const max = 200
	if len(payload) > max {
		payload = payload[:max]
	}
	return string(payload)
}
