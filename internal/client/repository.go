package client

import (
	"github.com/KromaEnergia/api-crm/internal/deal"
	"github.com/KromaEnergia/api-crm/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(db *gorm.DB, c *models.Client) error
	FindByID(db *gorm.DB, id uint) (*models.Client, error)
	List(db *gorm.DB) ([]models.Client, error)
	EmailTaken(db *gorm.DB, email string, exceptID uint) (bool, error)
	Update(db *gorm.DB, c *models.Client) error
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, c *models.Client) error {
	return db.Omit(clause.Associations).Create(c).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Client, error) {
	var c models.Client
	if err := db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) List(db *gorm.DB) ([]models.Client, error) {
	var list []models.Client
	err := db.Order("id ASC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) EmailTaken(db *gorm.DB, email string, exceptID uint) (bool, error) {
	var count int64
	q := db.Model(&models.Client{}).Where("email = ?", email)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *repositoryImpl) Update(db *gorm.DB, c *models.Client) error {
	return db.Omit(clause.Associations).Save(c).Error
}

// Delete apaga o cliente com seus deals (e os filhos dos deals).
// Deve rodar dentro de uma transação.
func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	if err := deal.DeleteWhere(db, "client_id = ?", id); err != nil {
		return err
	}
	return db.Delete(&models.Client{}, id).Error
}
