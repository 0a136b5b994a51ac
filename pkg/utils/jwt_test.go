package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("secret", "op-1", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "op-1", claims.OperatorID)
	assert.Equal(t, "contentflow", claims.Issuer)
}

func TestValidateToken_Rejects(t *testing.T) {
	expired, err := GenerateToken("secret", "op-1", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken("secret", expired)
	assert.Error(t, err)

	anonymous, err := GenerateToken("secret", "", time.Hour)
	require.NoError(t, err)
	_, err = ValidateToken("secret", anonymous)
	assert.Error(t, err)

	_, err = ValidateToken("secret", "not.a.token")
	assert.Error(t, err)
}
