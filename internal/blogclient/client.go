// Package blogclient provides typed operations over the blog, comment, and
// like collections. Each operation is one HTTP call through the request
// client; responses are normalized into the internal model types at this
// boundary.
package blogclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/api"
	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/models"
)

// Client is the resource client over the GatorBlog API.
type Client struct {
	api *api.Client
}

// New creates a resource client over the given request client.
func New(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// decodeEnvelope reads the whole body and extracts a failure message when the
// call did not succeed. The message lookup order is: JSON msg field, raw
// response text, "<status> <statusText>".
func decodeEnvelope(resp *http.Response) ([]byte, *models.Envelope, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, models.NewTransportError(err)
	}

	var env models.Envelope
	decodeErr := json.Unmarshal(body, &env)

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if ok && (decodeErr != nil || !env.Failed()) {
		return body, &env, nil
	}

	msg := env.Msg
	if decodeErr != nil || msg == "" {
		msg = string(body)
	}
	if msg == "" {
		msg = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, nil, models.NewUnauthorizedError(msg)
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil, &models.AppError{Code: models.CodeNotFound, Message: msg}
	default:
		return nil, nil, &models.AppError{Code: models.CodeServer, Message: msg}
	}
}

func marshalBody(v interface{}) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, models.NewValidationError("could not encode request body")
	}
	return body, nil
}
