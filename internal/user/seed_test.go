package user

import (
	"testing"

	"github.com/KromaEnergia/api-crm/internal/models"
	"github.com/KromaEnergia/api-crm/internal/testutil"
	"github.com/KromaEnergia/api-crm/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedOwner(t *testing.T) {
	db := testutil.NewDB(t)

	u, created, err := SeedOwner(db, "Boss", "boss@example.com", "first")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.RoleOwner, u.Role)
	assert.True(t, utils.CheckPassword(u.PasswordHash, "first"))

	// segunda execução reaproveita o usuário
	u2, created, err := SeedOwner(db, "", "boss@example.com", "second")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, u.ID, u2.ID)
	assert.Equal(t, "Boss", u2.Name)

	var stored models.User
	require.NoError(t, db.First(&stored, u.ID).Error)
	assert.True(t, utils.CheckPassword(stored.PasswordHash, "second"))
}

func TestSeedOwnerPromotesExistingUser(t *testing.T) {
	db := testutil.NewDB(t)
	rep := testutil.CreateUser(t, db, "rep@example.com", models.RoleSalesRep)

	u, created, err := SeedOwner(db, "", "rep@example.com", "pw")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, rep.ID, u.ID)
	assert.Equal(t, models.RoleOwner, u.Role)
}

func TestSeedOwnerValidation(t *testing.T) {
	db := testutil.NewDB(t)
	_, _, err := SeedOwner(db, "x", "", "pw")
	assert.Error(t, err)
	_, _, err = SeedOwner(db, "x", "not-an-email", "pw")
	assert.Error(t, err)
}
