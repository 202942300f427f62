package tibia

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeAPI serves /character/{name} and /worlds. Names listed in known exist;
// "boom" yields 500.
func fakeAPI(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	known := map[string][3]string{
		"knight one": {"Knight One", "Antica", "Elite Knight"},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/worlds":
			fmt.Fprint(w, `{"worlds":{"regular_worlds":[{"name":"Secura"},{"name":"Antica"}]}}`)
		case strings.HasPrefix(r.URL.Path, "/character/"):
			name := strings.TrimPrefix(r.URL.Path, "/character/")
			if name == "boom" {
				http.Error(w, "upstream down", http.StatusInternalServerError)
				return
			}
			if c, ok := known[strings.ToLower(name)]; ok {
				fmt.Fprintf(w, `{"characters":{"character":{"name":%q,"world":%q,"vocation":%q,"level":312}}}`, c[0], c[1], c[2])
				return
			}
			fmt.Fprint(w, `{"characters":{"character":{"name":""}}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestValidateCharacter_FoundCanonicalCasingAndCached(t *testing.T) {
	var hits int32
	srv := fakeAPI(t, &hits)
	v := New(Options{BaseURL: srv.URL + "/"})

	info := v.ValidateCharacter(context.Background(), "kNiGhT oNe")
	if info == nil || !info.Exists {
		t.Fatalf("expected existing character, got %+v", info)
	}
	if info.Name != "Knight One" || info.World != "Antica" || info.Vocation != "Elite Knight" || info.Level != 312 {
		t.Fatalf("unexpected info: %+v", info)
	}

	// Different casing hits the lowercased cache key.
	again := v.ValidateCharacter(context.Background(), "KNIGHT ONE")
	if again == nil || again.Name != "Knight One" {
		t.Fatalf("cached lookup = %+v", again)
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Fatalf("expected 1 upstream call, got %d", got)
	}
}

func TestValidateCharacter_NotFoundIsCached(t *testing.T) {
	var hits int32
	srv := fakeAPI(t, &hits)
	v := New(Options{BaseURL: srv.URL})

	for i := 0; i < 2; i++ {
		info := v.ValidateCharacter(context.Background(), "Ghost")
		if info == nil || info.Exists {
			t.Fatalf("expected Exists=false, got %+v", info)
		}
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Fatalf("expected negative result to be cached, got %d calls", got)
	}
}

func TestValidateCharacter_UpstreamErrorReturnsNilAndIsNotCached(t *testing.T) {
	var hits int32
	srv := fakeAPI(t, &hits)
	v := New(Options{BaseURL: srv.URL})

	if info := v.ValidateCharacter(context.Background(), "boom"); info != nil {
		t.Fatalf("expected nil on 500, got %+v", info)
	}
	if info := v.ValidateCharacter(context.Background(), "boom"); info != nil {
		t.Fatalf("expected nil on 500, got %+v", info)
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Fatalf("failures must not be cached; got %d calls", got)
	}
}

func TestValidateCharacter_TransportErrorAndBlankName(t *testing.T) {
	v := New(Options{BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond})
	if info := v.ValidateCharacter(context.Background(), "Anyone"); info != nil {
		t.Fatalf("expected nil on transport error, got %+v", info)
	}
	if info := v.ValidateCharacter(context.Background(), "   "); info != nil {
		t.Fatalf("expected nil for blank name, got %+v", info)
	}
}

func TestWorlds_SortedAndCached(t *testing.T) {
	var hits int32
	srv := fakeAPI(t, &hits)
	v := New(Options{BaseURL: srv.URL})

	w := v.Worlds(context.Background())
	if len(w) != 2 || w[0] != "Antica" || w[1] != "Secura" {
		t.Fatalf("unexpected worlds: %v", w)
	}
	_ = v.Worlds(context.Background())
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Fatalf("expected world list cached, got %d calls", got)
	}
}

func TestWorlds_Unavailable(t *testing.T) {
	v := New(Options{BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond})
	if w := v.Worlds(context.Background()); w != nil {
		t.Fatalf("expected nil, got %v", w)
	}
}

func TestMemoryCache_ExpiryAndSweep(t *testing.T) {
	c := NewMemoryCache()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	_ = c.Set(ctx, "a", []byte("1"), time.Minute)
	_ = c.Set(ctx, "b", []byte("2"), time.Hour)

	if v, ok, _ := c.Get(ctx, "a"); !ok || string(v) != "1" {
		t.Fatalf("expected hit for a, got %q %v", v, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, "a"); ok {
		t.Fatalf("expected a to be expired")
	}
	if c.Len() != 1 {
		t.Fatalf("expired entry should be dropped on read, len=%d", c.Len())
	}

	now = now.Add(2 * time.Hour)
	if n := c.Sweep(); n != 1 || c.Len() != 0 {
		t.Fatalf("Sweep dropped %d, len=%d", n, c.Len())
	}
}

func TestMemoryCache_StoresAndReturnsCopies(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	in := []byte("knight")
	_ = c.Set(ctx, "k", in, time.Minute)
	in[0] = 'X'

	out, found, err := c.Get(ctx, "k")
	if err != nil || !found || string(out) != "knight" {
		t.Fatalf("Get = %q %v %v; caller mutation leaked into the cache", out, found, err)
	}
	out[0] = 'Y'
	if again, _, _ := c.Get(ctx, "k"); string(again) != "knight" {
		t.Fatalf("Get = %q; returned slice aliases the cache", again)
	}
	if _, found, err := c.Get(ctx, "missing"); found || err != nil {
		t.Fatalf("missing key: found=%v err=%v", found, err)
	}
}

func TestValidator_RedisUnavailableFallsBackToUpstream(t *testing.T) {
	var hits int32
	srv := fakeAPI(t, &hits)

	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	v := New(Options{BaseURL: srv.URL, Cache: NewRedisCache(rdb, "")})
	info := v.ValidateCharacter(context.Background(), "Knight One")
	if info == nil || !info.Exists {
		t.Fatalf("expected lookup to succeed without cache, got %+v", info)
	}
	if rc, ok := v.Cache.(*RedisCache); !ok || rc.Prefix != "huntschedule:" {
		t.Fatalf("expected default prefix, got %+v", v.Cache)
	}
}
