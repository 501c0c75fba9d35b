package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/libpanel/pkg/cache"
	"github.com/matzehuels/libpanel/pkg/errors"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchLatest(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantAuthor string
		wantNil    bool
		wantCode   errors.Code
	}{
		{name: "string author", status: 200, body: `{"name":"a","version":"1.0.0","author":"Jane Doe <jane@example.com>"}`, wantAuthor: "Jane Doe <jane@example.com>"},
		{name: "object author", status: 200, body: `{"name":"a","version":"1.0.0","author":{"name":"Jane Doe","email":"jane@example.com"}}`, wantAuthor: "Jane Doe"},
		{name: "no author", status: 200, body: `{"name":"a","version":"1.0.0"}`},
		{name: "odd author shape", status: 200, body: `{"name":"a","author":["x"]}`},
		{name: "not found", status: 404, body: `{"error":"Not found"}`, wantNil: true},
		{name: "server error", status: 503, body: `oops`, wantNil: true},
		{name: "bad json", status: 200, body: `{"name":`, wantCode: errors.ErrCodeParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			c := NewClient(WithBaseURL(srv.URL))

			rec, err := c.FetchLatest(context.Background(), "a", false)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("err = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if rec != nil {
					t.Fatalf("rec = %+v, want nil", rec)
				}
				return
			}
			if got := rec.AuthorName(); got != tt.wantAuthor {
				t.Errorf("AuthorName() = %q, want %q", got, tt.wantAuthor)
			}
		})
	}
}

func TestFetchLatestRequest(t *testing.T) {
	var gotPath, gotAccept, gotUA string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`{"name":"@scope/pkg","version":"2.0.0"}`))
	})
	c := NewClient(WithBaseURL(srv.URL+"/"), WithHeaders(map[string]string{"User-Agent": "test-agent"}))

	if _, err := c.FetchLatest(context.Background(), "@scope/pkg", false); err != nil {
		t.Fatalf("FetchLatest: %v", err)
	}
	if gotPath != "/@scope%2Fpkg/latest" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}
	if gotUA != "test-agent" {
		t.Errorf("User-Agent = %q", gotUA)
	}
}

func TestFetchLatestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(WithBaseURL(url))
	_, err := c.FetchLatest(context.Background(), "react-native-svg", false)
	if !errors.Is(err, errors.ErrCodeTransport) {
		t.Fatalf("err = %v, want TRANSPORT_FAILURE", err)
	}
}

func TestFetchLatestUnusableName(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})
	c := NewClient(WithBaseURL(srv.URL))
	for _, pkg := range []string{"../etc/passwd", "foo/bar", ""} {
		rec, err := c.FetchLatest(context.Background(), pkg, false)
		if err != nil || rec != nil {
			t.Errorf("FetchLatest(%q) = %v, %v; want nil, nil", pkg, rec, err)
		}
	}
	if n := hits.Load(); n != 0 {
		t.Errorf("registry hits = %d, want 0", n)
	}
}

func TestFetchLatestCache(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/missing/latest":
			w.WriteHeader(http.StatusNotFound)
		case "/flaky/latest":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.Write([]byte(`{"name":"found","version":"1.0.0","author":"Ann"}`))
		}
	})
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := NewClient(WithBaseURL(srv.URL), WithCache(fc, time.Hour))
	ctx := context.Background()

	for range 2 {
		rec, err := c.FetchLatest(ctx, "found", false)
		if err != nil || rec.AuthorName() != "Ann" {
			t.Fatalf("found: rec=%+v err=%v", rec, err)
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("hits after cached record = %d, want 1", hits.Load())
	}

	for range 2 {
		rec, err := c.FetchLatest(ctx, "missing", false)
		if err != nil || rec != nil {
			t.Fatalf("missing: rec=%+v err=%v", rec, err)
		}
	}
	if hits.Load() != 2 {
		t.Fatalf("hits after cached miss = %d, want 2", hits.Load())
	}

	for range 2 {
		if _, err := c.FetchLatest(ctx, "flaky", false); err != nil {
			t.Fatal(err)
		}
	}
	if hits.Load() != 4 {
		t.Fatalf("hits after transient failures = %d, want 4", hits.Load())
	}

	if _, err := c.FetchLatest(ctx, "found", true); err != nil {
		t.Fatal(err)
	}
	if hits.Load() != 5 {
		t.Fatalf("refresh did not bypass cache: hits = %d", hits.Load())
	}
}

func TestFetchLatestSingleflight(t *testing.T) {
	var hits atomic.Int32
	seen := make(chan struct{}, 1)
	release := make(chan struct{})
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		seen <- struct{}{}
		<-release
		w.Write([]byte(`{"name":"shared","author":"Bo"}`))
	})
	c := NewClient(WithBaseURL(srv.URL))
	ctx := context.Background()

	var wg sync.WaitGroup
	names := make([]string, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		rec, _ := c.FetchLatest(ctx, "shared", false)
		names[0] = rec.AuthorName()
	}()
	<-seen
	wg.Add(1)
	go func() {
		defer wg.Done()
		rec, _ := c.FetchLatest(ctx, "shared", false)
		names[1] = rec.AuthorName()
	}()
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if hits.Load() != 1 {
		t.Errorf("hits = %d, want 1", hits.Load())
	}
	for i, n := range names {
		if n != "Bo" {
			t.Errorf("caller %d got %q", i, n)
		}
	}
}

func TestFetchLatestCallerCancel(t *testing.T) {
	release := make(chan struct{})
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(`{"name":"slow"}`))
	})
	defer close(release)
	c := NewClient(WithBaseURL(srv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.FetchLatest(ctx, "slow", false)
	if !errors.Is(err, errors.ErrCodeTransport) {
		t.Fatalf("err = %v, want TRANSPORT_FAILURE", err)
	}
}

func TestLatestURL(t *testing.T) {
	c := NewClient()
	tests := map[string]string{
		"react-native-svg":     "https://registry.npmjs.org/react-native-svg/latest",
		"@expo/vector-icons":   "https://registry.npmjs.org/@expo%2Fvector-icons/latest",
		"@react-native/assets": "https://registry.npmjs.org/@react-native%2Fassets/latest",
	}
	for pkg, want := range tests {
		if got := c.LatestURL(pkg); got != want {
			t.Errorf("LatestURL(%q) = %q, want %q", pkg, got, want)
		}
	}
}
