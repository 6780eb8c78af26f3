package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/libris/internal/cache"
	"github.com/ppiankov/libris/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, c cache.Cache) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := model.DefaultConfig()
	cfg.Store.BaseURL = server.URL
	cfg.Store.Token = "secret"
	cfg.RateLimiting.RequestsPerSecond = 0

	client, err := NewClient(cfg, c)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func noSleep(t *testing.T) {
	t.Helper()
	orig := sleepFunc
	sleepFunc = func(time.Duration) {}
	t.Cleanup(func() { sleepFunc = orig })
}

func TestNewClient_Endpoint(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Store.ProjectID = "abc123"

	client, err := NewClient(cfg, nil)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	want := "https://abc123.apicdn.sanity.io/v2024-01-01/data/query/production"
	if client.Endpoint() != want {
		t.Errorf("Expected %s, got %s", want, client.Endpoint())
	}

	cfg.Store.UseCDN = false
	cfg.Store.APIVersion = "v2021-10-21"
	client, _ = NewClient(cfg, nil)
	want = "https://abc123.api.sanity.io/v2021-10-21/data/query/production"
	if client.Endpoint() != want {
		t.Errorf("Expected %s, got %s", want, client.Endpoint())
	}
}

func TestNewClient_MissingProject(t *testing.T) {
	if _, err := NewClient(model.DefaultConfig(), nil); err == nil {
		t.Error("Expected error without project_id or base_url")
	}
}

func TestPostBySlug(t *testing.T) {
	var gotQuery, gotSlug, gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotSlug = r.URL.Query().Get("$slug")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"ms":3,"result":{"_id":"p1","title":"Why Tawhid","slug":{"current":"why-tawhid"},"tags":["islam"],"body":[{"_type":"block","children":[{"text":"One God."}]}]}}`)
	}, nil)

	post, err := client.PostBySlug(context.Background(), "why-tawhid")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if post == nil {
		t.Fatal("Expected post, got nil")
	}
	if post.Title != "Why Tawhid" || post.Slug.Current != "why-tawhid" {
		t.Errorf("Unexpected post: %+v", post)
	}
	if len(post.Body) != 1 || post.Body[0].Children[0].Text != "One God." {
		t.Errorf("Unexpected body: %+v", post.Body)
	}
	if gotSlug != `"why-tawhid"` {
		t.Errorf("Expected JSON-encoded slug param, got %s", gotSlug)
	}
	if !strings.Contains(gotQuery, "slug.current == $slug") {
		t.Errorf("Unexpected query: %s", gotQuery)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Expected bearer token, got %q", gotAuth)
	}
}

func TestPostBySlug_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"result":null}`)
	}, nil)

	post, err := client.PostBySlug(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Expected no error for missing post, got %v", err)
	}
	if post != nil {
		t.Errorf("Expected nil post, got %+v", post)
	}
}

func TestCategoryPosts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"result":[
			{"_id":"a","title":"A","slug":{"current":"a"},"category":"islam","categoryWeight":2},
			{"_id":"b","title":"B","slug":{"current":"b"},"category":"shia"}
		]}`)
	}, nil)

	posts, err := client.CategoryPosts(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("Expected 2 posts, got %d", len(posts))
	}
	if posts[0].CategoryWeight == nil || *posts[0].CategoryWeight != 2 {
		t.Errorf("Expected weight 2, got %v", posts[0].CategoryWeight)
	}
	if posts[1].CategoryWeight != nil {
		t.Errorf("Expected nil weight, got %v", *posts[1].CategoryWeight)
	}
}

func TestLibraryPosts_TransientThenSuccess(t *testing.T) {
	noSleep(t)

	var attempts atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = fmt.Fprint(w, `{"result":[{"_id":"a","title":"A"}]}`)
	}, nil)

	posts, err := client.LibraryPosts(context.Background())
	if err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("Expected 1 post, got %d", len(posts))
	}
	if attempts.Load() != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts.Load())
	}
}

func TestLibraryPosts_PermanentFailure(t *testing.T) {
	noSleep(t)

	var attempts atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = fmt.Fprint(w, `{"error":{"description":"param $slug referenced, but not provided"}}`)
	}, nil)

	_, err := client.LibraryPosts(context.Background())
	if err == nil {
		t.Fatal("Expected error for 400")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected *StatusError, got %T", err)
	}
	if statusErr.Code != http.StatusBadRequest {
		t.Errorf("Expected code 400, got %d", statusErr.Code)
	}
	if !strings.Contains(err.Error(), "not provided") {
		t.Errorf("Expected store description in error, got %v", err)
	}
	if attempts.Load() != 1 {
		t.Errorf("Expected 1 attempt, got %d", attempts.Load())
	}
}

func TestLibraryPosts_AllRetriesExhausted(t *testing.T) {
	noSleep(t)

	var attempts atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}, nil)

	if _, err := client.LibraryPosts(context.Background()); err == nil {
		t.Fatal("Expected error after retries")
	}
	if attempts.Load() != maxAttempts {
		t.Errorf("Expected %d attempts, got %d", maxAttempts, attempts.Load())
	}
}

func TestQuery_CachesResult(t *testing.T) {
	var attempts atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		_, _ = fmt.Fprint(w, `{"result":{"_id":"p1","title":"Cached"}}`)
	}, cache.NewMemoryCache(time.Minute, time.Minute))

	for i := 0; i < 3; i++ {
		post, err := client.PostBySlug(context.Background(), "cached")
		if err != nil || post == nil || post.Title != "Cached" {
			t.Fatalf("call %d: unexpected result %+v, %v", i, post, err)
		}
	}
	if attempts.Load() != 1 {
		t.Errorf("Expected 1 request, got %d", attempts.Load())
	}

	// A different slug is a different key
	_, _ = client.PostBySlug(context.Background(), "other")
	if attempts.Load() != 2 {
		t.Errorf("Expected 2 requests, got %d", attempts.Load())
	}
}

func TestQuery_MalformedResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `<html>maintenance</html>`)
	}, nil)

	if _, err := client.CategoryPosts(context.Background()); err == nil {
		t.Error("Expected decode error")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"503", &StatusError{Code: 503}, true},
		{"500", &StatusError{Code: 500}, true},
		{"502 wrapped", fmt.Errorf("library posts: %w", &StatusError{Code: 502}), true},
		{"429", &StatusError{Code: 429}, true},
		{"404", &StatusError{Code: 404}, false},
		{"403", &StatusError{Code: 403}, false},
		{"network", fmt.Errorf("fetch: %w", &url.Error{Op: "Get", URL: "http://x", Err: errors.New("connection refused")}), true},
		{"cancelled", fmt.Errorf("fetch: %w", &url.Error{Op: "Get", URL: "http://x", Err: context.Canceled}), false},
		{"decode", errors.New("decode response: unexpected end of JSON input"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryable(tt.err); got != tt.retryable {
				t.Errorf("isRetryable(%v) = %v, want %v", tt.err, got, tt.retryable)
			}
		})
	}
}

func TestStatusError_Error(t *testing.T) {
	err := &StatusError{Code: 503, Status: "Service Unavailable"}
	if err.Error() != "unexpected status: 503 Service Unavailable" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}
