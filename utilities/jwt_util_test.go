package utilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamifyiq-backend/internal/model"
)

func TestGenerateAndValidateTokens(t *testing.T) {
	user := &model.User{ID: 7, Email: "jane.smith@company.com", Role: model.RoleEmployee}

	access, refresh, err := GenerateTokens(user)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := ValidateToken(access, false)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "jane.smith@company.com", claims.Email)
	assert.Equal(t, model.RoleEmployee, claims.Role)
}

func TestAccessTokenRejectedAsRefresh(t *testing.T) {
	user := &model.User{ID: 1, Email: "admin@gamifyiq.com", Role: model.RoleAdmin}

	access, _, err := GenerateTokens(user)
	require.NoError(t, err)

	_, err = ValidateToken(access, true)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token", false)
	assert.Error(t, err)
}

func TestRefreshTokensRoundTrip(t *testing.T) {
	user := &model.User{ID: 3, Email: "john.doe@company.com", Role: model.RoleEmployee}

	_, refresh, err := GenerateTokens(user)
	require.NoError(t, err)

	newAccess, newRefresh, err := RefreshTokens(refresh)
	require.NoError(t, err)

	claims, err := ValidateToken(newAccess, false)
	require.NoError(t, err)
	assert.Equal(t, uint(3), claims.UserID)

	_, err = ValidateToken(newRefresh, true)
	assert.NoError(t, err)
}
