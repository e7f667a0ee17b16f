package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour, "inventory-tracker")
	userID := uuid.New()

	token, err := m.GenerateToken(userID, "clerk@example.com", "Clerk", "INVENTORY_CLERK",
		[]string{"issuance:create"}, "v1")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "INVENTORY_CLERK", claims.RoleCode)
	assert.Equal(t, "v1", claims.TokenVersion)
	assert.True(t, claims.HasPrivilege("issuance:create"))
	assert.False(t, claims.HasPrivilege("user:manage"))
}

func TestManagerRejects(t *testing.T) {
	m := NewManager("test-secret", time.Hour, "inventory-tracker")
	token, err := m.GenerateToken(uuid.New(), "a@b.c", "A", "VIEWER", nil, "v1")
	require.NoError(t, err)

	t.Run("Should reject a missing token", func(t *testing.T) {
		_, err := m.ValidateToken("")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("Should reject a token signed with another secret", func(t *testing.T) {
		other := NewManager("other-secret", time.Hour, "inventory-tracker")
		_, err := other.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Should reject an expired token", func(t *testing.T) {
		later := NewManager("test-secret", time.Hour, "inventory-tracker")
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Should reject a foreign issuer", func(t *testing.T) {
		other := NewManager("test-secret", time.Hour, "someone-else")
		_, err := other.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
