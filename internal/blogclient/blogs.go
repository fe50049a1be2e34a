package blogclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/models"
)

// BlogInput carries the editable fields of a post.
type BlogInput struct {
	Title string `json:"title"`
	Post  string `json:"post"`
}

// ListBlogs returns the current user's blogs, optionally title-filtered.
func (c *Client) ListBlogs(ctx context.Context, titleFilter string) ([]models.Blog, error) {
	path := "/blogs"
	if titleFilter != "" {
		path += "?title=" + url.QueryEscape(titleFilter)
	}

	resp, err := c.api.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	_, env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	var blogs []models.Blog
	if len(env.Blogs) > 0 {
		if err := json.Unmarshal(env.Blogs, &blogs); err != nil {
			return nil, models.NewServerError("malformed blog list", err)
		}
	}
	return blogs, nil
}

// ListBlogsWithMeta returns the current user's blogs enriched with like
// counts and comments, optionally filtered by a search term.
func (c *Client) ListBlogsWithMeta(ctx context.Context, search string) ([]models.BlogWithMeta, error) {
	return c.listWithMeta(ctx, "/blogs-with-meta", search)
}

// ListAllBlogsWithMeta returns every user's blogs with metadata; this backs
// the community dashboard.
func (c *Client) ListAllBlogsWithMeta(ctx context.Context, search string) ([]models.BlogWithMeta, error) {
	return c.listWithMeta(ctx, "/all-blogs-with-meta", search)
}

// PopularBlogs returns the top posts ranked by like count.
func (c *Client) PopularBlogs(ctx context.Context) ([]models.BlogWithMeta, error) {
	return c.listWithMeta(ctx, "/popular-blogs", "")
}

func (c *Client) listWithMeta(ctx context.Context, path, search string) ([]models.BlogWithMeta, error) {
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}

	resp, err := c.api.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	_, env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	var blogs []models.BlogWithMeta
	if len(env.Blogs) > 0 {
		if err := json.Unmarshal(env.Blogs, &blogs); err != nil {
			return nil, models.NewServerError("malformed blog list", err)
		}
	}
	return blogs, nil
}

// GetBlog fetches one blog. The API has returned both a wrapped
// {"blog": {...}} envelope and the blog fields at the top level across its
// history; both shapes are normalized here, and anything else fails with
// NOT_FOUND.
func (c *Client) GetBlog(ctx context.Context, id uint) (*models.Blog, error) {
	resp, err := c.api.Get(ctx, fmt.Sprintf("/blogs/%d", id))
	if err != nil {
		return nil, err
	}
	body, env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	// Wrapped shape first.
	if len(env.Blog) > 0 {
		var blog models.Blog
		if err := json.Unmarshal(env.Blog, &blog); err == nil && blog.ID != 0 {
			return &blog, nil
		}
	}

	// Flat shape: the blog fields at the top level.
	var blog models.Blog
	if err := json.Unmarshal(body, &blog); err == nil && blog.ID != 0 {
		return &blog, nil
	}

	return nil, models.NewNotFoundError("blog", id)
}

// CreateBlog creates a post and returns it (including the server-assigned id).
func (c *Client) CreateBlog(ctx context.Context, input BlogInput) (*models.Blog, error) {
	body, err := marshalBody(input)
	if err != nil {
		return nil, err
	}

	resp, err := c.api.Post(ctx, "/blogs", body)
	if err != nil {
		return nil, err
	}
	_, env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	var blog models.Blog
	if len(env.Blog) == 0 {
		return nil, models.NewServerError("create response carried no blog", nil)
	}
	if err := json.Unmarshal(env.Blog, &blog); err != nil {
		return nil, models.NewServerError("malformed blog in create response", err)
	}
	return &blog, nil
}

// UpdateBlog replaces the title and body of an existing post.
func (c *Client) UpdateBlog(ctx context.Context, id uint, input BlogInput) error {
	body, err := marshalBody(input)
	if err != nil {
		return err
	}

	resp, err := c.api.Put(ctx, fmt.Sprintf("/blogs/%d", id), body)
	if err != nil {
		return err
	}
	_, _, err = decodeEnvelope(resp)
	return err
}

// DeleteBlog removes a post.
func (c *Client) DeleteBlog(ctx context.Context, id uint) error {
	resp, err := c.api.Delete(ctx, fmt.Sprintf("/blogs/%d", id))
	if err != nil {
		return err
	}
	_, _, err = decodeEnvelope(resp)
	return err
}
