package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheDisabledWithoutClient(t *testing.T) {
	cache := NewCache(nil)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", "v", time.Minute))

	var out string
	found, err := cache.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Delete(ctx, "k"))
	cache.InvalidateUserBlogs(ctx, 1)
}

func TestBlogListPopulatesCache(t *testing.T) {
	_, app, mr := newTestServerWithRedis(t)
	token, userID := signUpUser(t, app, "alice", "alice@ufl.edu")
	seedBlog(t, app, token, "Cached post")

	resp, _ := doJSON(t, app, http.MethodGet, "/api/blogs", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.True(t, mr.Exists(fmt.Sprintf("user:%d:blogs", userID)))
}

func TestBlogListServedFromCache(t *testing.T) {
	srv, app, mr := newTestServerWithRedis(t)
	token, userID := signUpUser(t, app, "alice", "alice@ufl.edu")
	blogID := seedBlog(t, app, token, "Original title")

	// Warm the cache, then change the row behind its back.
	resp, _ := doJSON(t, app, http.MethodGet, "/api/blogs", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, mr.Exists(fmt.Sprintf("user:%d:blogs", userID)))

	require.NoError(t, srv.db.Model(&models.Blog{}).
		Where("id = ?", blogID).
		Update("title", "Changed behind the cache").Error)

	_, raw := doJSON(t, app, http.MethodGet, "/api/blogs", token, nil)
	blogs := decodeBlogs(t, raw)
	require.Len(t, blogs, 1)
	assert.Equal(t, "Original title", blogs[0].Title)
}

func TestBlogCreateInvalidatesCache(t *testing.T) {
	_, app, mr := newTestServerWithRedis(t)
	token, userID := signUpUser(t, app, "alice", "alice@ufl.edu")
	seedBlog(t, app, token, "First")

	// Warm both the plain and a title-filtered list.
	doJSON(t, app, http.MethodGet, "/api/blogs", token, nil)
	doJSON(t, app, http.MethodGet, "/api/blogs?title=First", token, nil)
	require.True(t, mr.Exists(fmt.Sprintf("user:%d:blogs", userID)))
	require.True(t, mr.Exists(fmt.Sprintf("user:%d:blogs:title:First", userID)))

	seedBlog(t, app, token, "Second")

	assert.False(t, mr.Exists(fmt.Sprintf("user:%d:blogs", userID)))
	assert.False(t, mr.Exists(fmt.Sprintf("user:%d:blogs:title:First", userID)))

	_, raw := doJSON(t, app, http.MethodGet, "/api/blogs", token, nil)
	assert.Len(t, decodeBlogs(t, raw), 2)
}

func TestBlogDeleteInvalidatesFetchCache(t *testing.T) {
	_, app, mr := newTestServerWithRedis(t)
	token, userID := signUpUser(t, app, "alice", "alice@ufl.edu")
	blogID := seedBlog(t, app, token, "Short lived")

	resp, _ := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/blogs/%d", blogID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, mr.Exists(fmt.Sprintf("user:%d:blog:%d", userID, blogID)))

	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/blogs/%d", blogID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, mr.Exists(fmt.Sprintf("user:%d:blog:%d", userID, blogID)))

	resp, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/blogs/%d", blogID), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
