package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, err := Generate(secret, "user-1", "operario", "produccion-api", 5)
	require.NoError(t, err)

	userID, role, err := Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "operario", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := Generate(secret, "user-1", "admin", "produccion-api", 5)
	require.NoError(t, err)

	_, _, err = Parse("otro-secret", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := Generate(secret, "user-1", "admin", "produccion-api", -1)
	require.NoError(t, err)

	_, _, err = Parse(secret, token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParse_SinRolEsValido(t *testing.T) {
	token, err := Generate(secret, "user-1", "", "produccion-api", 5)
	require.NoError(t, err)

	userID, role, err := Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Empty(t, role)
}

func TestParse_SinUsuario(t *testing.T) {
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, _, err = Parse(secret, token)
	assert.ErrorIs(t, err, ErrMissingSubject)
}

func TestSecretVacio(t *testing.T) {
	_, err := Generate("", "u", "admin", "i", 5)
	assert.Error(t, err)
	_, _, err = Parse("", "x")
	assert.Error(t, err)
}
