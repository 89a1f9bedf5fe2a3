// Package token is the persisted session store: a single encrypted cookie
// slot holding the raw bearer token issued by the blog API. The token is an
// opaque credential; it is never parsed or validated on this side, only
// carried. Absence of the cookie means "logged out" and is a normal outcome,
// not an error callers need to report.
package token

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const cookieName string = "session"

var (
	ErrNoToken      = errors.New("no session token")
	ErrInvalidValue = errors.New("invalid cookie value")
)

// encrypt seals the bearer token with AES-GCM. The cookie name is included in
// the plaintext so a value cannot be replayed under a different cookie name.
func encrypt(tok string, secret []byte, cookieName string) (*string, error) {
	block, err := aes.NewCipher(secret)
	if err != nil {
		return nil, err
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	// Create a unique nonce containing 12 random bytes.
	nonce := make([]byte, aesGCM.NonceSize())
	_, err = io.ReadFull(rand.Reader, nonce)
	if err != nil {
		return nil, err
	}

	// Plaintext is "{cookie name}:{token}". The : separator is an invalid
	// character for cookie names so it cannot appear in the name part.
	plaintext := fmt.Sprintf("%s:%s", cookieName, tok)

	// Passing the nonce as the destination prepends it to the ciphertext, so
	// the stored value is "{nonce}{encrypted plaintext}".
	encryptedValue := aesGCM.Seal(nonce, nonce, []byte(plaintext), nil)

	res := base64.URLEncoding.EncodeToString(encryptedValue)
	return &res, nil
}

// decrypt validates and extracts the bearer token from a session cookie
// value. Tampered, truncated or renamed values all come back as
// ErrInvalidValue.
func decrypt(encrypted string, secret []byte, expectedCookieName string) (string, error) {
	value, err := base64.URLEncoding.DecodeString(encrypted)
	if err != nil {
		return "", ErrInvalidValue
	}

	block, err := aes.NewCipher(secret)
	if err != nil {
		return "", err
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonceSize := aesGCM.NonceSize()
	if len(value) < nonceSize {
		return "", ErrInvalidValue
	}

	nonce := value[:nonceSize]
	ciphertext := value[nonceSize:]

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrInvalidValue
	}

	actualName, tok, ok := strings.Cut(string(plaintext), ":")
	if !ok {
		return "", ErrInvalidValue
	}

	if actualName != expectedCookieName {
		return "", ErrInvalidValue
	}
	if tok == "" {
		return "", ErrInvalidValue
	}
	return tok, nil
}

// Get reads the bearer token from the request's session cookie. A missing
// cookie returns ErrNoToken.
func Get(r *http.Request, secret []byte) (string, error) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return "", ErrNoToken
	}

	return decrypt(cookie.Value, secret, cookieName)
}

// Set writes the bearer token into the session cookie.
func Set(w http.ResponseWriter, tok string, secret []byte) error {
	encryptedValue, err := encrypt(tok, secret, cookieName)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    *encryptedValue,
		HttpOnly: true,
		// Send cookie to all routes in the app
		Path:   "/",
		Secure: true,
	})
	return nil
}

// Clear expires the session cookie. Clearing when no cookie is present is a
// no-op from the browser's point of view, so Clear is safe to call on any
// path that tears a session down.
func Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		HttpOnly: true,
		Path:     "/",
		Secure:   true,
		MaxAge:   -1,
	})
}

// ctxKey is a custom type for context keys to avoid collisions
type ctxKey struct{}

// NewContext returns ctx carrying the bearer token for outgoing API calls.
func NewContext(ctx context.Context, tok string) context.Context {
	return context.WithValue(ctx, ctxKey{}, tok)
}

// FromContext extracts the bearer token, if any, from ctx.
func FromContext(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(ctxKey{}).(string)
	return tok, ok && tok != ""
}
