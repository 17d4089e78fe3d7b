package db

import (
	"github.com/KromaEnergia/api-crm/internal/models"
	"gorm.io/gorm"
)

// Migrate cria/atualiza as tabelas do CRM.
func Migrate(database *gorm.DB) error {
	return database.AutoMigrate(models.AllModels()...)
}
