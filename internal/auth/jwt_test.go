package auth

import (
	"testing"
	"time"

	"github.com/KromaEnergia/api-crm/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = models.User{ID: 42, Email: "rep@example.com", Role: models.RoleSalesRep}

func TestIssueAndParse(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer("secret", 24*time.Hour).WithClock(func() time.Time { return now })

	token, exp, err := issuer.Issue(testUser)
	require.NoError(t, err)
	assert.Equal(t, now.Add(24*time.Hour), exp)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "rep@example.com", claims.Email)
	assert.Equal(t, models.RoleSalesRep, claims.Role)
	assert.Equal(t, "42", claims.Subject)
}

func TestParse_Expired(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer("secret", 24*time.Hour).WithClock(func() time.Time { return now })
	token, _, err := issuer.Issue(testUser)
	require.NoError(t, err)

	later := issuer.WithClock(func() time.Time { return now.Add(25 * time.Hour) })
	_, err = later.Parse(token)
	assert.Error(t, err)
}

func TestParse_WrongSecret(t *testing.T) {
	token, _, err := NewTokenIssuer("secret", time.Hour).Issue(testUser)
	require.NoError(t, err)

	_, err = NewTokenIssuer("other", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestParse_RejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{UserID: 1, Email: "a@b.com", Role: models.RoleOwner, RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestParse_RequiresExpiry(t *testing.T) {
	claims := &Claims{UserID: 1, Email: "a@b.com", Role: models.RoleOwner}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret", time.Hour).Parse(token)
	assert.Error(t, err)
}
