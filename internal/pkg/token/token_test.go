package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/xyz-asif/gocart/pkg/errors"
)

func TestIssueRejectsBadInput(t *testing.T) {
	_, err := Issue(nil, "secret", time.Minute)
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = Issue(map[string]interface{}{}, "secret", time.Minute)
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = Issue(map[string]interface{}{"email": "a@x.com"}, "", time.Minute)
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestRoundTrip(t *testing.T) {
	payload := map[string]interface{}{
		"email": "a@x.com",
		"name":  "joy",
		"role":  "user",
	}

	tok, err := Issue(payload, "register-secret", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := Verify(tok, "register-secret")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", claims["email"])
	require.Equal(t, "joy", claims["name"])
	require.Equal(t, "user", claims["role"])
	require.Equal(t, "a@x.com", Email(claims))
}

func TestVerifyExpired(t *testing.T) {
	tok, err := Issue(map[string]interface{}{"email": "a@x.com"}, "s", -time.Minute)
	require.NoError(t, err)

	_, err = Verify(tok, "s")
	require.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	tok, err := Issue(map[string]interface{}{"email": "a@x.com"}, "right", time.Minute)
	require.NoError(t, err)

	_, err = Verify(tok, "wrong")
	require.ErrorIs(t, err, apperrors.ErrInvalidSignature)
}

func TestVerifyMalformed(t *testing.T) {
	_, err := Verify("not-a-jwt", "s")
	require.ErrorIs(t, err, apperrors.ErrTokenMalformed)
}

func TestSecretsAreIndependentPerClass(t *testing.T) {
	access, err := Issue(map[string]interface{}{"email": "a@x.com"}, "access-secret", time.Minute)
	require.NoError(t, err)

	// an access token must not verify as a refresh token
	_, err = Verify(access, "refresh-secret")
	require.ErrorIs(t, err, apperrors.ErrInvalidSignature)
}
