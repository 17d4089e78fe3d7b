package utils

import (
	"github.com/KromaEnergia/api-crm/internal/apperrors"
	"gorm.io/gorm"
)

// Exists devolve NotFound(msg) quando a tabela de model não tem a linha id.
func Exists(db *gorm.DB, model any, id uint, msg string) error {
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperrors.Persistence("Failed to load record", err)
	}
	if count == 0 {
		return apperrors.NotFound(msg)
	}
	return nil
}
