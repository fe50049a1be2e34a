package blogclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/models"
)

// ListLikes returns the full like list for a blog. Callers derive the count
// and whether the current user is in it.
func (c *Client) ListLikes(ctx context.Context, blogID uint) ([]models.Like, error) {
	resp, err := c.api.Get(ctx, fmt.Sprintf("/blogs/%d/likes", blogID))
	if err != nil {
		return nil, err
	}
	body, _, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	var likes []models.Like
	if err := json.Unmarshal(body, &likes); err != nil {
		return nil, models.NewServerError("malformed like list", err)
	}
	return likes, nil
}

// AddLike likes a blog on behalf of the authenticated user. No body is sent;
// the server derives the user from the credential.
func (c *Client) AddLike(ctx context.Context, blogID uint) error {
	resp, err := c.api.Post(ctx, fmt.Sprintf("/blogs/%d/likes", blogID), nil)
	if err != nil {
		return err
	}
	_, _, err = decodeEnvelope(resp)
	return err
}

// RemoveLike removes the authenticated user's like. Removal is DELETE
// uniformly; the POST-based removal seen in some historical clients was a
// bug, not a protocol choice.
func (c *Client) RemoveLike(ctx context.Context, blogID uint) error {
	resp, err := c.api.Delete(ctx, fmt.Sprintf("/blogs/%d/likes", blogID))
	if err != nil {
		return err
	}
	_, _, err = decodeEnvelope(resp)
	return err
}

// ToggleLike adds or removes the user's like based on current membership and
// returns the new liked state. The round trip is synchronous, so two toggles
// from one caller cannot overlap.
func (c *Client) ToggleLike(ctx context.Context, blogID, userID uint) (bool, error) {
	likes, err := c.ListLikes(ctx, blogID)
	if err != nil {
		return false, err
	}

	if models.LikedBy(likes, userID) {
		if err := c.RemoveLike(ctx, blogID); err != nil {
			return true, err
		}
		return false, nil
	}

	if err := c.AddLike(ctx, blogID); err != nil {
		return false, err
	}
	return true, nil
}
