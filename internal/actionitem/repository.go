package actionitem

import (
	"github.com/KromaEnergia/api-crm/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(db *gorm.DB, a *models.ActionItem) error
	FindByID(db *gorm.DB, id uint) (*models.ActionItem, error)
	ListByDeal(db *gorm.DB, dealID uint) ([]models.ActionItem, error)
	Update(db *gorm.DB, a *models.ActionItem) error
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, a *models.ActionItem) error {
	return db.Omit(clause.Associations).Create(a).Error
}

// FindByID carrega também o dono, para o owner_name.
func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*models.ActionItem, error) {
	var a models.ActionItem
	if err := db.Preload("Owner").First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repositoryImpl) ListByDeal(db *gorm.DB, dealID uint) ([]models.ActionItem, error) {
	var list []models.ActionItem
	err := db.Preload("Owner").
		Where("deal_id = ?", dealID).
		Order("due_date ASC").
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Update(db *gorm.DB, a *models.ActionItem) error {
	return db.Omit(clause.Associations).Save(a).Error
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&models.ActionItem{}, id).Error
}
