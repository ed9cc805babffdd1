package leaderboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PatrikSjolin/hollowheart/internal/platform/logger"
)

type fakeBoard struct {
	mu      sync.Mutex
	entries []Entry
	gets    atomic.Int32
	fail    bool
}

func (f *fakeBoard) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if f.fail {
		http.Error(w, "down", http.StatusServiceUnavailable)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	switch r.Method {
	case http.MethodPost:
		var e Entry
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.entries = append(f.entries, e)
		w.WriteHeader(http.StatusCreated)
	case http.MethodGet:
		f.gets.Add(1)
		json.NewEncoder(w).Encode(f.entries)
	}
}

func TestSubmitAndTop(t *testing.T) {
	board := &fakeBoard{entries: []Entry{{Name: "Grace", Depth: 4}}}
	srv := httptest.NewServer(board)
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Minute, time.Second, logger.Discard())
	c.Submit("Ada", 9)
	c.Wait()

	top, err := c.Top(context.Background())
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(top) != 2 || top[0].Name != "Ada" || top[0].Depth != 9 {
		t.Errorf("ranking = %+v", top)
	}

	// Second call is served from cache.
	c.Top(context.Background())
	if n := board.gets.Load(); n != 1 {
		t.Errorf("remote fetched %d times, want 1", n)
	}

	// A successful submit invalidates the cache.
	c.Submit("Lin", 2)
	c.Wait()
	top, _ = c.Top(context.Background())
	if len(top) != 3 || board.gets.Load() != 2 {
		t.Errorf("after submit: %d entries, %d fetches", len(top), board.gets.Load())
	}
}

func TestCacheExpires(t *testing.T) {
	board := &fakeBoard{}
	srv := httptest.NewServer(board)
	defer srv.Close()

	c := NewClient(srv.URL, 20*time.Millisecond, time.Second, logger.Discard())
	c.Top(context.Background())
	time.Sleep(60 * time.Millisecond)
	c.Top(context.Background())
	if n := board.gets.Load(); n != 2 {
		t.Errorf("fetches = %d, want 2 after expiry", n)
	}
}

func TestFailuresStayLocal(t *testing.T) {
	srv := httptest.NewServer(&fakeBoard{fail: true})
	defer srv.Close()

	c := NewClient(srv.URL, time.Minute, time.Second, logger.Discard())
	c.Submit("Ada", 3)
	c.Wait()

	if _, err := c.Top(context.Background()); err == nil {
		t.Errorf("expected fetch error from failing service")
	}

	rec := httptest.NewRecorder()
	c.Handler()(rec, httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "[]\n" {
		t.Errorf("handler = %d %q", rec.Code, rec.Body.String())
	}
}

func TestDisabledClient(t *testing.T) {
	c := NewClient("", time.Minute, time.Second, logger.Discard())
	if c.Enabled() {
		t.Fatal("empty URL should disable the client")
	}
	c.Submit("Ada", 3)
	c.Wait()
	top, err := c.Top(context.Background())
	if top != nil || err != nil {
		t.Errorf("disabled Top = %v, %v", top, err)
	}
}
