package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mkoller-dev/quillpress/internal/shared/config"
	"github.com/mkoller-dev/quillpress/internal/shared/token"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(&config.Config{APIBaseURL: srv.URL}, zerolog.Nop())
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	ctx := token.NewContext(context.Background(), "t1")
	var out struct{}
	if err := c.Get(ctx, "/posts", nil, &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotAuth != "Bearer t1" {
		t.Fatalf("got Authorization %q, want %q", gotAuth, "Bearer t1")
	}
}

func TestNoTokenNoHeader(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	var out struct{}
	if err := c.Get(context.Background(), "/posts", nil, &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("unauthenticated request carried Authorization %q", gotAuth)
	}
}

func TestUnauthorizedKind(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	})

	err := c.Get(context.Background(), "/auth/me", nil, &struct{}{})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized", err)
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is not *Error: %v", err)
	}
	if apiErr.Message != "Invalid credentials" {
		t.Fatalf("got message %q", apiErr.Message)
	}
}

func TestBackendErrorMessagePassthrough(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"Email already in use"}`))
	})

	err := c.Post(context.Background(), "/auth/register", map[string]string{}, &struct{}{})
	if !errors.Is(err, ErrBackend) {
		t.Fatalf("got %v, want ErrBackend", err)
	}
	if got := UserMessage(err, "fallback"); got != "Email already in use" {
		t.Fatalf("got user message %q", got)
	}
}

func TestBackendErrorFallbackMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := c.Get(context.Background(), "/posts", nil, &struct{}{})
	if !errors.Is(err, ErrBackend) {
		t.Fatalf("got %v, want ErrBackend", err)
	}
	if got := UserMessage(err, "fallback"); got != "fallback" {
		t.Fatalf("got user message %q", got)
	}
}

func TestTransportKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := New(&config.Config{APIBaseURL: srv.URL}, zerolog.Nop())
	err := c.Get(context.Background(), "/posts", nil, &struct{}{})
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("got %v, want ErrTransport", err)
	}
}

func TestMalformedResponseKind(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"posts": not json`))
	})

	var out struct{ Posts []struct{} }
	err := c.Get(context.Background(), "/posts", nil, &out)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("got %v, want ErrMalformed", err)
	}
}

func TestDeleteSendsNoBody(t *testing.T) {
	var gotMethod, gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	})

	if err := c.Delete(context.Background(), "/posts/42"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/posts/42" {
		t.Fatalf("got %s %s, want DELETE /posts/42", gotMethod, gotPath)
	}
}
