package stagehistory

import (
	"github.com/KromaEnergia/api-crm/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	ListByDeal(db *gorm.DB, dealID uint) ([]models.StageHistory, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// ListByDeal devolve o histórico do mais antigo para o mais novo.
func (r *repositoryImpl) ListByDeal(db *gorm.DB, dealID uint) ([]models.StageHistory, error) {
	var list []models.StageHistory
	err := db.Where("deal_id = ?", dealID).
		Order("entered_at ASC").
		Order("id ASC").
		Find(&list).Error
	return list, err
}
