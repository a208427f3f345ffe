package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCookieStore(t *testing.T) {
	t.Run("rejects an empty secret", func(t *testing.T) {
		_, err := NewCookieStore("")
		require.Error(t, err)
	})
}

func TestCookieStore(t *testing.T) {
	t.Run("round-trips session values", func(t *testing.T) {
		store, err := NewCookieStore("sekrit")
		require.NoError(t, err)

		token, err := store.Issue(map[string]string{"user": "frank"})
		require.NoError(t, err)

		values, err := store.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"user": "frank"}, values)
	})

	t.Run("rejects tampered tokens", func(t *testing.T) {
		store, err := NewCookieStore("sekrit")
		require.NoError(t, err)

		token, err := store.Issue(map[string]string{"user": "frank"})
		require.NoError(t, err)

		body, sig, ok := strings.Cut(token, ".")
		require.True(t, ok)

		_, err = store.Verify(body + "x." + sig)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects tokens signed with a different secret", func(t *testing.T) {
		issuer, err := NewCookieStore("one")
		require.NoError(t, err)
		verifier, err := NewCookieStore("two")
		require.NoError(t, err)

		token, err := issuer.Issue(nil)
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects malformed tokens", func(t *testing.T) {
		store, err := NewCookieStore("sekrit")
		require.NoError(t, err)

		_, err = store.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("issues a unique id per token", func(t *testing.T) {
		store, err := NewCookieStore("sekrit")
		require.NoError(t, err)

		a, err := store.Issue(nil)
		require.NoError(t, err)
		b, err := store.Issue(nil)
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}
