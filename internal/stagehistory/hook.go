// Package stagehistory registra as passagens de um deal pelas etapas do funil.
package stagehistory

import (
	"errors"
	"time"

	"github.com/KromaEnergia/api-crm/internal/models"
	"gorm.io/gorm"
)

// Open abre uma linha para a etapa, sem saída.
func Open(tx *gorm.DB, dealID uint, stage string, at time.Time) error {
	return tx.Create(&models.StageHistory{
		DealID:    dealID,
		Stage:     stage,
		EnteredAt: at.UTC(),
	}).Error
}

// Transition fecha a linha aberta mais recente de from e abre uma para to.
// Mesma etapa não é mudança. Sem linha aberta para from, apenas abre to.
// Roda na transação do update do deal.
func Transition(tx *gorm.DB, dealID uint, from, to string, at time.Time) error {
	if from == to {
		return nil
	}
	at = at.UTC()

	var open models.StageHistory
	err := tx.Where("deal_id = ? AND stage = ? AND exited_at IS NULL", dealID, from).
		Order("entered_at DESC").
		Order("id DESC").
		First(&open).Error
	switch {
	case err == nil:
		if err := tx.Model(&open).Update("exited_at", at).Error; err != nil {
			return err
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	return Open(tx, dealID, to, at)
}
