package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/models"
	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionStore(t *testing.T) (*session.Store, *session.FileStorage) {
	t.Helper()
	storage := session.NewFileStorage(filepath.Join(t.TempDir(), "session.json"))
	return session.NewStore(storage), storage
}

func TestCredentialInjection(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store, _ := newSessionStore(t)
	require.NoError(t, store.Login("raw-token-value", models.Profile{ID: 1}))

	client := NewClient(srv.URL, store)
	resp, err := client.Get(context.Background(), "/blogs")
	require.NoError(t, err)
	resp.Body.Close()

	// The stored string is sent verbatim, no "Bearer " prefix.
	assert.Equal(t, "raw-token-value", gotAuth)
}

func TestNoCredentialNoHeader(t *testing.T) {
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store, _ := newSessionStore(t)
	client := NewClient(srv.URL, store)
	resp, err := client.Get(context.Background(), "/blogs")
	require.NoError(t, err)
	resp.Body.Close()

	assert.False(t, hasAuth)
}

func TestGetStripsBody(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store, _ := newSessionStore(t)
	client := NewClient(srv.URL, store)
	resp, err := client.Do(context.Background(), http.MethodGet, "/blogs",
		[]byte(`{"should":"be dropped"}`), nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Empty(t, gotBody)
}

func TestUnauthorizedClearsSessionAndNavigates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store, storage := newSessionStore(t)
	require.NoError(t, store.Login("expired-token", models.Profile{ID: 1}))

	var navigations int32
	client := NewClient(srv.URL, store)
	client.OnUnauthorized = func() { atomic.AddInt32(&navigations, 1) }

	resp, err := client.Get(context.Background(), "/blogs")
	require.NoError(t, err)
	resp.Body.Close()

	// The caller still gets the raw 401 response.
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	assert.False(t, store.LoggedIn())
	_, ok, err := storage.Get(session.KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, int32(1), atomic.LoadInt32(&navigations))
}

func TestConcurrentUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store, _ := newSessionStore(t)
	require.NoError(t, store.Login("expired-token", models.Profile{ID: 1}))

	var navigations int32
	client := NewClient(srv.URL, store)
	client.OnUnauthorized = func() { atomic.AddInt32(&navigations, 1) }

	const inflight = 5
	var wg sync.WaitGroup
	for i := 0; i < inflight; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := client.Get(context.Background(), "/blogs")
			if err == nil {
				resp.Body.Close()
			}
		}()
	}
	wg.Wait()

	// One navigation per 401; clearing an already-cleared session stayed a
	// no-op rather than an error.
	assert.Equal(t, int32(inflight), atomic.LoadInt32(&navigations))
	assert.False(t, store.LoggedIn())
}

func TestTransportErrorDoesNotClearSession(t *testing.T) {
	store, _ := newSessionStore(t)
	require.NoError(t, store.Login("still-good", models.Profile{ID: 1}))

	var navigated bool
	// Nothing listens here; connection refused.
	client := NewClient("http://127.0.0.1:1", store)
	client.OnUnauthorized = func() { navigated = true }

	_, err := client.Get(context.Background(), "/blogs")
	require.Error(t, err)
	assert.Equal(t, models.CodeTransport, models.ErrorCode(err))

	assert.True(t, store.LoggedIn())
	assert.False(t, navigated)
}

func TestContextCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	store, _ := newSessionStore(t)
	client := NewClient(srv.URL, store)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Get(ctx, "/blogs")
	require.Error(t, err)
	assert.Equal(t, models.CodeTransport, models.ErrorCode(err))
}

func TestContentTypeAndRequestID(t *testing.T) {
	var contentType, requestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		requestID = r.Header.Get("X-Request-ID")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store, _ := newSessionStore(t)
	client := NewClient(srv.URL, store)
	resp, err := client.Post(context.Background(), "/signin", []byte(`{}`))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "application/json", contentType)
	assert.NotEmpty(t, requestID)
}
