package models

import "encoding/json"

// Status values carried in the statusText field of every envelope.
const (
	StatusOK    = "OK"
	StatusError = "error"
)

// Envelope is the response wrapper the API speaks. Sign-in additionally
// carries the token and the principal's snapshot at the top level; the blog
// endpoints carry their payload under blog/blogs. Unknown fields are
// preserved nowhere: clients decode only what they need.
type Envelope struct {
	StatusText string          `json:"statusText"`
	Msg        string          `json:"msg,omitempty"`
	Token      string          `json:"token,omitempty"`
	UserID     uint            `json:"user_id,omitempty"`
	Username   string          `json:"username,omitempty"`
	Email      string          `json:"email,omitempty"`
	Blog       json.RawMessage `json:"blog,omitempty"`
	Blogs      json.RawMessage `json:"blogs,omitempty"`
}

// Failed reports whether the envelope announces an application-level error.
// The original API frequently signals failure with HTTP 200 plus
// statusText "error", so status codes alone are not sufficient.
func (e *Envelope) Failed() bool {
	return e.StatusText == StatusError
}
