package blogclient

import (
	"context"

	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/models"
)

// AuthResult is the outcome of a successful sign-in or sign-up.
type AuthResult struct {
	Token string
	User  models.Profile
}

// SignUp registers a new account. Callers run the pre-flight validation
// before getting here; the server re-checks everything it cares about.
func (c *Client) SignUp(ctx context.Context, username, email, password string) (*AuthResult, error) {
	body, err := marshalBody(map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.api.Post(ctx, "/signup", body)
	if err != nil {
		return nil, err
	}
	_, env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}
	return authResultFromEnvelope(env)
}

// SignIn exchanges credentials for a token and the user snapshot. The caller
// feeds the result into the session store.
func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	body, err := marshalBody(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.api.Post(ctx, "/signin", body)
	if err != nil {
		return nil, err
	}
	_, env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}
	return authResultFromEnvelope(env)
}

func authResultFromEnvelope(env *models.Envelope) (*AuthResult, error) {
	if env.Token == "" {
		return nil, models.NewServerError("sign-in response carried no token", nil)
	}
	return &AuthResult{
		Token: env.Token,
		User: models.Profile{
			ID:       env.UserID,
			Username: env.Username,
			Email:    env.Email,
		},
	}, nil
}

// RequestResetCode starts the password-reset wizard by mailing a six-digit
// code to the account's address.
func (c *Client) RequestResetCode(ctx context.Context, email string) error {
	body, err := marshalBody(map[string]string{"email": email})
	if err != nil {
		return err
	}
	resp, err := c.api.Post(ctx, "/request-reset-code", body)
	if err != nil {
		return err
	}
	_, _, err = decodeEnvelope(resp)
	return err
}

// VerifyResetCode is step two of the wizard.
func (c *Client) VerifyResetCode(ctx context.Context, email, code string) error {
	body, err := marshalBody(map[string]string{"email": email, "code": code})
	if err != nil {
		return err
	}
	resp, err := c.api.Post(ctx, "/verify-reset-code", body)
	if err != nil {
		return err
	}
	_, _, err = decodeEnvelope(resp)
	return err
}

// ResetPassword is the final wizard step.
func (c *Client) ResetPassword(ctx context.Context, email, newPassword string) error {
	body, err := marshalBody(map[string]string{
		"email":        email,
		"new_password": newPassword,
	})
	if err != nil {
		return err
	}
	resp, err := c.api.Post(ctx, "/reset-password", body)
	if err != nil {
		return err
	}
	_, _, err = decodeEnvelope(resp)
	return err
}
