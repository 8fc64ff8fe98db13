package security

import (
	"errors"
	"testing"
	"time"

	"digilocker/internal/common"
	"digilocker/internal/platform/config"

	"github.com/stretchr/testify/require"
)

func initTestJWT(t *testing.T, exp time.Duration) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey: []byte("test-secret"),
		JWTExp: exp,
	}
	InitJWT()
}

func TestGenerateAndVerify_Success(t *testing.T) {
	initTestJWT(t, time.Hour)

	tok, err := GenerateToken("alice")
	require.NoError(t, err)

	subject, err := VerifyToken(tok)
	require.NoError(t, err)
	require.Equal(t, "alice", subject)
}

func TestVerifyToken_Expired(t *testing.T) {
	initTestJWT(t, -1*time.Second)

	tok, err := GenerateToken("alice")
	require.NoError(t, err)

	_, err = VerifyToken(tok)
	require.ErrorIs(t, err, ErrTokenExpired)
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestVerifyToken_AcceptedUntilExpiry(t *testing.T) {
	initTestJWT(t, 2*time.Second)

	tok, err := GenerateToken("bob")
	require.NoError(t, err)

	subject, err := VerifyToken(tok)
	require.NoError(t, err)
	require.Equal(t, "bob", subject)
}

func TestVerifyToken_WrongKey(t *testing.T) {
	initTestJWT(t, time.Hour)
	tok, err := GenerateToken("alice")
	require.NoError(t, err)

	config.AppConfig.JWTKey = []byte("other-secret")
	_, err = VerifyToken(tok)
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrTokenExpired))
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestVerifyToken_Malformed(t *testing.T) {
	initTestJWT(t, time.Hour)

	_, err := VerifyToken("not.a.jwt")
	require.ErrorIs(t, err, ErrTokenMalformed)
}
