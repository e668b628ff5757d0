package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, err := tm.GenerateToken("admin-1", "admin@tutorhive.in")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "admin-1", claims.AdminID)
	assert.Equal(t, "admin@tutorhive.in", claims.Email)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a").GenerateToken("admin-1", "admin@tutorhive.in")
	assert.NoError(t, err)

	_, err = NewTokenManager("secret-b").ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret")

	for _, tokenString := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		_, err := tm.ValidateToken(tokenString)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret")

	claims := jwt.MapClaims{
		"admin_id": "admin-1",
		"email":    "admin@tutorhive.in",
		"exp":      time.Now().Add(-time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsUnsignedAlgorithm(t *testing.T) {
	tm := NewTokenManager("test-secret")

	claims := jwt.MapClaims{
		"admin_id": "admin-1",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsMissingAdminID(t *testing.T) {
	tm := NewTokenManager("test-secret")

	claims := jwt.MapClaims{
		"email": "admin@tutorhive.in",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
