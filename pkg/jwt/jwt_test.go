package jwt

import (
	"testing"
	"time"

	"clinic-admin/config"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(accessExpiry time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  accessExpiry,
		RefreshExpiry: time.Hour,
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := newService(time.Minute)
	userID := uuid.New()

	token, tokenID, err := svc.GenerateAccessToken(userID, "reception@clinic.test", 2)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, 2, claims.RoleID)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestValidateTokenRejectsOtherSecret(t *testing.T) {
	token, _, err := newService(time.Minute).GenerateRefreshToken(uuid.New(), "a@b.c", 1)
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{Secret: "different", AccessExpiry: time.Minute, RefreshExpiry: time.Hour})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := newService(-time.Minute)
	token, _, err := svc.GenerateAccessToken(uuid.New(), "a@b.c", 1)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsOtherIssuer(t *testing.T) {
	issuedBy := func(iss string) *JWTService {
		return NewJWTService(config.JWTConfig{Secret: "shared", Issuer: iss, AccessExpiry: time.Minute, RefreshExpiry: time.Hour})
	}

	token, _, err := issuedBy("billing").GenerateAccessToken(uuid.New(), "a@b.c", 1)
	require.NoError(t, err)

	_, err = issuedBy("clinic-admin").ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsUnsignedToken(t *testing.T) {
	unsigned := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, Claims{UserID: uuid.New(), TokenID: "x", TokenType: AccessToken})
	token, err := unsigned.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newService(time.Minute).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGeneratedTokensCarryRegisteredClaims(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "s", Issuer: "clinic-admin", AccessExpiry: time.Minute, RefreshExpiry: time.Hour})
	fixed := time.Now().Truncate(time.Second)
	svc.now = func() time.Time { return fixed }
	userID := uuid.New()

	token, tokenID, err := svc.GenerateRefreshToken(userID, "a@b.c", 3)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.ID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "clinic-admin", claims.Issuer)
	assert.True(t, claims.ExpiresAt.Time.Equal(fixed.Add(time.Hour)))
}
