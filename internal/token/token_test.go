package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elsaedy55/Revo-backend/internal/domain"
)

const testSecret = "test-signing-key"

func newTestService() *Service {
	return NewService(testSecret, "http://localhost:8080")
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	svc := newTestService()
	identity := domain.Identity{
		SubjectID:   "u1",
		Email:       "a@b.com",
		DisplayName: "Ali",
	}

	signed, err := svc.Issue(identity, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	got, err := svc.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, identity, got)
}

func TestVerifyExpired(t *testing.T) {
	svc := newTestService()
	signed, err := svc.Issue(domain.Identity{SubjectID: "u1"}, -time.Minute)
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerifyMalformed(t *testing.T) {
	svc := newTestService()

	for _, tokenString := range []string{"", "not-a-jwt", "a.b", "a.b.c"} {
		_, err := svc.Verify(tokenString)
		assert.ErrorIs(t, err, ErrMalformed, "token %q", tokenString)
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	svc := newTestService()
	other := NewService("a-different-secret", "http://localhost:8080")

	signed, err := other.Issue(domain.Identity{SubjectID: "u1"}, time.Hour)
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyRejectsNonHMACMethod(t *testing.T) {
	svc := newTestService()

	// alg=none tokens must never validate.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "u1"})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(raw)
	assert.Error(t, err)
}

func TestVerifyMissingSubject(t *testing.T) {
	svc := newTestService()

	claims := Claims{
		Email: "a@b.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "http://localhost:8080",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrMissingSubject)
}

func TestIssuedClaims(t *testing.T) {
	svc := newTestService()
	signed, err := svc.Issue(domain.Identity{SubjectID: "u1", Email: "a@b.com", DisplayName: "Ali"}, time.Hour)
	require.NoError(t, err)

	parsed, err := jwt.ParseWithClaims(signed, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)

	claims := parsed.Claims.(*Claims)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "Ali", claims.Name)
	assert.Equal(t, "http://localhost:8080", claims.Issuer)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}
