package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Store is the narrow interface the engine exposes to session
// collaborators. Implementations must be safe for concurrent use.
type Store interface {
	// Issue serializes values into an opaque token suitable for a cookie.
	Issue(values map[string]string) (string, error)

	// Verify authenticates a token and returns its values.
	Verify(token string) (map[string]string, error)
}

// ErrInvalidToken is returned by Verify for malformed or tampered tokens.
var ErrInvalidToken = errors.New("session: invalid token")

// payload is the signed session body.
type payload struct {
	ID     string            `json:"id"`
	Values map[string]string `json:"values,omitempty"`
}

// CookieStore signs session payloads with HMAC-SHA256 keyed by the
// application's session_secret setting.
type CookieStore struct {
	secret []byte
}

// NewCookieStore returns a store keyed by secret. The secret must be
// non-empty; it is consumed opaquely.
func NewCookieStore(secret string) (*CookieStore, error) {
	if secret == "" {
		return nil, errors.New("session: secret must not be empty")
	}

	return &CookieStore{secret: []byte(secret)}, nil
}

// Issue serializes values with a fresh session id and signs the result.
// The token layout is base64(body) + "." + base64(hmac).
func (s *CookieStore) Issue(values map[string]string) (string, error) {
	body, err := json.Marshal(payload{
		ID:     uuid.NewString(),
		Values: values,
	})
	if err != nil {
		return "", fmt.Errorf("session: encode payload: %w", err)
	}

	encoded := base64.RawURLEncoding.EncodeToString(body)

	return encoded + "." + s.sign(encoded), nil
}

// Verify authenticates a token issued by this store and returns its
// values. The signature comparison is constant-time.
func (s *CookieStore) Verify(token string) (map[string]string, error) {
	encoded, sig, ok := strings.Cut(token, ".")
	if !ok {
		return nil, ErrInvalidToken
	}

	if !hmac.Equal([]byte(s.sign(encoded)), []byte(sig)) {
		return nil, ErrInvalidToken
	}

	body, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, ErrInvalidToken
	}

	return p.Values, nil
}

func (s *CookieStore) sign(encoded string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(encoded))

	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
