// Package apiclient is the single point of egress to the blog API. It owns
// base-URL resolution, bearer-token injection and the translation of HTTP
// outcomes into typed errors. It deliberately performs no navigation and
// holds no session state: a 401 surfaces as ErrUnauthorized and the session
// layer decides what that means for the user.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mkoller-dev/quillpress/internal/shared/config"
	"github.com/mkoller-dev/quillpress/internal/shared/token"
)

type Client struct {
	base   string
	client *http.Client
	logger zerolog.Logger
}

func New(cfg *config.Config, logger zerolog.Logger) *Client {
	return &Client{
		base: strings.TrimRight(cfg.APIBaseURL, "/"),
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger.With().Str("component", "apiclient").Logger(),
	}
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// errorBody is the backend's error payload. Some endpoints use "message",
// older ones use "error"; both are accepted.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (b errorBody) text() string {
	if b.Message != "" {
		return b.Message
	}
	return b.Error
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	op := fmt.Sprintf("%s %s", method, path)

	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: ErrMalformed, Op: op, Message: err.Error()}
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return &Error{Kind: ErrTransport, Op: op, Message: err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Requests without a token in the context go out unauthenticated.
	if tok, ok := token.FromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("op", op).Msg("Backend request failed")
		return &Error{Kind: ErrTransport, Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var eb errorBody
		// Best effort: an undecodable error body just means no message.
		_ = json.NewDecoder(resp.Body).Decode(&eb)

		kind := ErrBackend
		if resp.StatusCode == http.StatusUnauthorized {
			kind = ErrUnauthorized
		}
		return &Error{Kind: kind, Op: op, Status: resp.StatusCode, Message: eb.text()}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error().Err(err).Str("op", op).Msg("Undecodable backend response")
		return &Error{Kind: ErrMalformed, Op: op, Status: resp.StatusCode, Message: err.Error()}
	}
	return nil
}
