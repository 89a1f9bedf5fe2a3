package session

import (
	"context"
	"errors"
	"testing"

	"github.com/mkoller-dev/quillpress/internal/blogapi"
	"github.com/mkoller-dev/quillpress/internal/shared/apiclient"
	"github.com/mkoller-dev/quillpress/internal/shared/config"
)

type fakeAuthAPI struct {
	loginCalls    int
	registerCalls int
	session       *blogapi.Session
	err           error
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (*blogapi.Session, error) {
	f.loginCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func (f *fakeAuthAPI) Register(ctx context.Context, username, email, password string) (*blogapi.Session, error) {
	f.registerCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func newTestService(api authAPI) *service {
	return &service{
		api:    api,
		config: &config.Config{SecretKey: "30313233343536373839616263646566303132333435363738396162636465ff"},
	}
}

func TestRegisterWeakPasswordRejectedLocally(t *testing.T) {
	api := &fakeAuthAPI{}
	s := newTestService(api)

	_, issues, err := s.Register(context.Background(), RegisterInput{
		Username:        "alice",
		Email:           "a@b.com",
		Password:        "abc",
		ConfirmPassword: "abc",
	})

	if !errors.Is(err, errValidation) {
		t.Fatalf("got %v, want errValidation", err)
	}
	// "abc" fails length, uppercase, number and symbol.
	if len(issues) != 4 {
		t.Fatalf("got %d issues, want 4: %v", len(issues), issues)
	}
	if api.registerCalls != 0 {
		t.Fatalf("backend called %d times for locally rejected input", api.registerCalls)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	api := &fakeAuthAPI{}
	s := newTestService(api)

	_, issues, err := s.Register(context.Background(), RegisterInput{Email: "a@b.com"})
	if !errors.Is(err, errValidation) {
		t.Fatalf("got %v", err)
	}
	if len(issues) != 1 || issues[0] != "All fields are required" {
		t.Fatalf("got issues %v", issues)
	}
	if api.registerCalls != 0 {
		t.Fatal("backend called for empty form")
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	api := &fakeAuthAPI{}
	s := newTestService(api)

	_, issues, err := s.Register(context.Background(), RegisterInput{
		Username:        "alice",
		Email:           "a@b.com",
		Password:        "Secret1!",
		ConfirmPassword: "Secret2!",
	})
	if !errors.Is(err, errValidation) {
		t.Fatalf("got %v", err)
	}
	if len(issues) != 1 || issues[0] != "Passwords do not match" {
		t.Fatalf("got issues %v", issues)
	}
	if api.registerCalls != 0 {
		t.Fatal("backend called for mismatched passwords")
	}
}

func TestRegisterValidInputCallsBackend(t *testing.T) {
	api := &fakeAuthAPI{session: &blogapi.Session{Token: "t2", User: blogapi.User{ID: 2}}}
	s := newTestService(api)

	sess, issues, err := s.Register(context.Background(), RegisterInput{
		Username:        "alice",
		Email:           "a@b.com",
		Password:        "Secret1!",
		ConfirmPassword: "Secret1!",
	})
	if err != nil || len(issues) != 0 {
		t.Fatalf("got err=%v issues=%v", err, issues)
	}
	if sess.Token != "t2" {
		t.Fatalf("got session %+v", sess)
	}
	if api.registerCalls != 1 {
		t.Fatalf("backend called %d times", api.registerCalls)
	}
}

func TestRegisterBackendFailurePassesThrough(t *testing.T) {
	backendErr := &apiclient.Error{Kind: apiclient.ErrBackend, Status: 409, Message: "Email already in use"}
	api := &fakeAuthAPI{err: backendErr}
	s := newTestService(api)

	_, issues, err := s.Register(context.Background(), RegisterInput{
		Username:        "alice",
		Email:           "a@b.com",
		Password:        "Secret1!",
		ConfirmPassword: "Secret1!",
	})
	if issues != nil {
		t.Fatalf("unexpected validation issues %v", issues)
	}
	if !errors.Is(err, apiclient.ErrBackend) {
		t.Fatalf("got %v", err)
	}
	if got := apiclient.UserMessage(err, "fallback"); got != "Email already in use" {
		t.Fatalf("got user message %q", got)
	}
}

func TestLoginPassesThrough(t *testing.T) {
	api := &fakeAuthAPI{session: &blogapi.Session{Token: "t1", User: blogapi.User{ID: 1, Username: "a"}}}
	s := newTestService(api)

	sess, err := s.Login(context.Background(), "a@b.com", "Secret1!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.Token != "t1" || sess.User.ID != 1 {
		t.Fatalf("got session %+v", sess)
	}
}

func TestPasswordIssues(t *testing.T) {
	if issues := passwordIssues("Secret1!"); len(issues) != 0 {
		t.Fatalf("valid password flagged: %v", issues)
	}
	if issues := passwordIssues("secret1!"); len(issues) != 1 {
		t.Fatalf("want uppercase issue only, got %v", issues)
	}
	if issues := passwordIssues("SECRET1!"); len(issues) != 1 {
		t.Fatalf("want lowercase issue only, got %v", issues)
	}
	if issues := passwordIssues("Secrets!"); len(issues) != 1 {
		t.Fatalf("want number issue only, got %v", issues)
	}
	if issues := passwordIssues("Secret12"); len(issues) != 1 {
		t.Fatalf("want symbol issue only, got %v", issues)
	}
}
