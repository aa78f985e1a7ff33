package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbeoliero/realty/pkg/errcode"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(Claims{UserId: "u1", Role: "agent", AgencyId: "a1", PlatformId: 5}, "secret", 1)
	require.NoError(t, err)

	claims, err := ParseToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserId)
	assert.Equal(t, "agent", claims.Role)
	assert.Equal(t, "a1", claims.AgencyId)
	assert.Equal(t, 5, claims.PlatformId)
	assert.Equal(t, "u1", claims.Subject)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(Claims{UserId: "u1"}, "secret", 1)
	require.NoError(t, err)

	_, err = ParseToken(token, "other")
	assert.ErrorIs(t, err, errcode.ErrTokenInvalid)
}

func TestParseToken_Expired(t *testing.T) {
	claims := Claims{
		UserId: "u1",
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-time.Hour)),
			Issuer:    issuer,
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = ParseToken(token, "secret")
	assert.ErrorIs(t, err, errcode.ErrTokenExpired)
}
