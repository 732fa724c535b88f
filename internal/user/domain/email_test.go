package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	t.Run("valid email is normalized to lowercase", func(t *testing.T) {
		email, err := NewEmail("John.Doe@Example.COM")
		require.NoError(t, err)
		assert.Equal(t, "john.doe@example.com", email.String())
	})

	t.Run("already lowercase email round-trips", func(t *testing.T) {
		email, err := NewEmail("user@example.com")
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", email.String())
	})

	t.Run("invalid emails fail construction", func(t *testing.T) {
		invalid := []string{
			"",
			"plainaddress",
			"missing@tld",
			"two words@example.com",
			"@example.com",
			"user@",
			"user@domain@example.com",
		}
		for _, raw := range invalid {
			_, err := NewEmail(raw)
			assert.ErrorIs(t, err, ErrInvalidEmail, raw)
		}
	})
}

func TestEmailEquals(t *testing.T) {
	lower, err := NewEmail("user@example.com")
	require.NoError(t, err)

	upper, err := NewEmail("USER@EXAMPLE.COM")
	require.NoError(t, err)

	assert.True(t, lower.Equals(upper))

	other, err := NewEmail("other@example.com")
	require.NoError(t, err)
	assert.False(t, lower.Equals(other))
}

func TestEmailIsZero(t *testing.T) {
	assert.True(t, Email{}.IsZero())

	email, err := NewEmail("user@example.com")
	require.NoError(t, err)
	assert.False(t, email.IsZero())
}
