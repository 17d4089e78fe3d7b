// Package testutil monta um banco SQLite em memória com o schema do CRM.
package testutil

import (
	"testing"
	"time"

	"github.com/KromaEnergia/api-crm/internal/models"
	"github.com/KromaEnergia/api-crm/internal/utils/db"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB abre um SQLite em memória com foreign keys ligadas.
// Uma única conexão: cada conexão de :memory: seria um banco separado.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger, _ := test.NewNullLogger()
	database, err := db.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), logger)
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(database))
	return database
}

// NewLogger devolve um logger silencioso com hook para inspecionar entradas.
func NewLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}

// FixedClock devolve uma função now fixa.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func CreateClient(t *testing.T, database *gorm.DB, email string) models.Client {
	t.Helper()
	c := models.Client{Company: "Acme " + email, ContactName: "Jane Doe", Email: email}
	require.NoError(t, database.Create(&c).Error)
	return c
}

func CreateUser(t *testing.T, database *gorm.DB, email string, role models.Role) models.User {
	t.Helper()
	u := models.User{Name: "User " + email, Email: email, Role: role, PasswordHash: "x"}
	require.NoError(t, database.Create(&u).Error)
	return u
}

func CreateDeal(t *testing.T, database *gorm.DB, clientID, repID uint, stage string) models.Deal {
	t.Helper()
	d := models.Deal{
		ClientID:       clientID,
		SalesRepID:     repID,
		Stage:          stage,
		EstimatedValue: decimal.RequireFromString("1000.00"),
		Probability:    0.5,
	}
	require.NoError(t, database.Create(&d).Error)
	return d
}
