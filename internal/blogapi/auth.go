package blogapi

import "context"

// Me resolves the bearer token in ctx into the user it belongs to.
func (c *Client) Me(ctx context.Context) (*User, error) {
	out := new(User)
	if err := c.api.Get(ctx, "/auth/me", nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Login exchanges credentials for a session token and identity.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	out := new(Session)
	if err := c.api.Post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Register creates an account. The backend logs the new user in immediately,
// so the response carries a usable session token.
func (c *Client) Register(ctx context.Context, username, email, password string) (*Session, error) {
	out := new(Session)
	req := registerRequest{Username: username, Email: email, Password: password}
	if err := c.api.Post(ctx, "/auth/register", req, out); err != nil {
		return nil, err
	}
	return out, nil
}
