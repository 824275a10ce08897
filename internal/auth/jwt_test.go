package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratinto/agri-credit-backend/internal/auth"
)

func TestJWTManager_MintAndParse(t *testing.T) {
	manager := auth.NewJWTManager("agri-credit-backend", "test-secret", time.Hour)

	t.Run("round trips farmer claims", func(t *testing.T) {
		token, err := manager.Mint("FRM000001", auth.RoleFarmer)
		require.NoError(t, err)

		claims, err := manager.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, "FRM000001", claims.SubjectID)
		assert.Equal(t, auth.RoleFarmer, claims.Role)
	})

	t.Run("round trips bank claims", func(t *testing.T) {
		token, err := manager.Mint("BANK001", auth.RoleBank)
		require.NoError(t, err)

		claims, err := manager.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, "BANK001", claims.SubjectID)
		assert.Equal(t, auth.RoleBank, claims.Role)
	})

	t.Run("rejects a token signed with another key", func(t *testing.T) {
		other := auth.NewJWTManager("agri-credit-backend", "other-secret", time.Hour)
		token, err := other.Mint("FRM000001", auth.RoleFarmer)
		require.NoError(t, err)

		_, err = manager.Parse(token)
		assert.Error(t, err)
	})

	t.Run("rejects a token from another issuer", func(t *testing.T) {
		other := auth.NewJWTManager("someone-else", "test-secret", time.Hour)
		token, err := other.Mint("FRM000001", auth.RoleFarmer)
		require.NoError(t, err)

		_, err = manager.Parse(token)
		assert.Error(t, err)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := auth.NewJWTManager("agri-credit-backend", "test-secret", -time.Minute)
		token, err := expired.Mint("FRM000001", auth.RoleFarmer)
		require.NoError(t, err)

		_, err = manager.Parse(token)
		assert.Error(t, err)
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		token, err := manager.Mint("FRM000001", "auditor")
		require.NoError(t, err)

		_, err = manager.Parse(token)
		assert.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := manager.Parse("not.a.token")
		assert.Error(t, err)
	})
}
