package paymentschedule

import (
	"github.com/KromaEnergia/api-crm/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	Create(db *gorm.DB, p *models.PaymentSchedule) error
	FindByID(db *gorm.DB, id uint) (*models.PaymentSchedule, error)
	ListByDeal(db *gorm.DB, dealID uint) ([]models.PaymentSchedule, error)
	Update(db *gorm.DB, p *models.PaymentSchedule) error
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, p *models.PaymentSchedule) error {
	return db.Create(p).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*models.PaymentSchedule, error) {
	var p models.PaymentSchedule
	if err := db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByDeal ordena pelo vencimento.
func (r *repositoryImpl) ListByDeal(db *gorm.DB, dealID uint) ([]models.PaymentSchedule, error) {
	var list []models.PaymentSchedule
	err := db.Where("deal_id = ?", dealID).
		Order("due_date ASC").
		Order("id ASC").
		Find(&list).Error
	return list, err
}

// Update grava todas as colunas; paid_on nulo precisa ir para o banco.
func (r *repositoryImpl) Update(db *gorm.DB, p *models.PaymentSchedule) error {
	return db.Save(p).Error
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&models.PaymentSchedule{}, id).Error
}
