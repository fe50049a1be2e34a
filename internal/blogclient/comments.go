package blogclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/models"
)

// ListComments returns all comments on a blog, oldest first.
func (c *Client) ListComments(ctx context.Context, blogID uint) ([]models.Comment, error) {
	resp, err := c.api.Get(ctx, fmt.Sprintf("/blogs/%d/comments", blogID))
	if err != nil {
		return nil, err
	}
	body, _, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	// The comments endpoint returns a bare JSON array, not an envelope.
	var comments []models.Comment
	if err := json.Unmarshal(body, &comments); err != nil {
		return nil, models.NewServerError("malformed comment list", err)
	}
	return comments, nil
}

// AddComment posts a comment on a blog. A zero authorID is sent as the
// sentinel rather than omitted, matching the wire contract.
func (c *Client) AddComment(ctx context.Context, blogID uint, content string, authorID uint) (*models.Comment, error) {
	body, err := marshalBody(map[string]interface{}{
		"content": content,
		"user_id": authorID,
		"blog_id": blogID,
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.api.Post(ctx, fmt.Sprintf("/blogs/%d/comments", blogID), body)
	if err != nil {
		return nil, err
	}
	raw, _, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	var comment models.Comment
	if err := json.Unmarshal(raw, &comment); err != nil {
		return nil, models.NewServerError("malformed comment in response", err)
	}
	return &comment, nil
}
