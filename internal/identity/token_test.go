package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/tienda-ecom/internal/apperr"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	g := NewGate(testSecret, "tienda-test", time.Hour)
	tok, err := g.Issue("3f0c1a52-8e7b-4c55-9a40-5a1d2b3c4d5e", RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.NotEmpty(t, tok.AccessToken)

	claims, err := g.Verify(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "3f0c1a52-8e7b-4c55-9a40-5a1d2b3c4d5e", claims.UserID)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.True(t, claims.Role.IsAdmin())
}

func TestVerifyRejectsExpired(t *testing.T) {
	t.Parallel()

	g := NewGate(testSecret, "tienda-test", time.Minute)
	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return issuedAt }
	tok, err := g.Issue("u1", RoleCustomer)
	require.NoError(t, err)

	g.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	_, err = g.Verify(tok.AccessToken)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestVerifyRejectsForeignSignatureAndIssuer(t *testing.T) {
	t.Parallel()

	g := NewGate(testSecret, "tienda-test", time.Hour)

	other := NewGate("another-secret-another-secret-xx", "tienda-test", time.Hour)
	tok, err := other.Issue("u1", RoleAdmin)
	require.NoError(t, err)
	_, err = g.Verify(tok.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	otherIssuer := NewGate(testSecret, "someone-else", time.Hour)
	tok, err = otherIssuer.Issue("u1", RoleAdmin)
	require.NoError(t, err)
	_, err = g.Verify(tok.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsTokenWithoutRoleOrType(t *testing.T) {
	t.Parallel()

	g := NewGate(testSecret, "tienda-test", time.Hour)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"iss": "tienda-test",
		"exp": time.Now().Add(time.Hour).Unix(),
		"typ": "verify",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = g.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = g.Verify("   ")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestIssueRequiresKnownRole(t *testing.T) {
	t.Parallel()

	g := NewGate(testSecret, "tienda-test", time.Hour)
	_, err := g.Issue("u1", Role("ROOT"))
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
