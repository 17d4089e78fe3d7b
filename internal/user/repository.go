package user

import (
	"github.com/KromaEnergia/api-crm/internal/deal"
	"github.com/KromaEnergia/api-crm/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(db *gorm.DB, u *models.User) error
	FindByID(db *gorm.DB, id uint) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	EmailTaken(db *gorm.DB, email string, exceptID uint) (bool, error)
	List(db *gorm.DB) ([]models.User, error)
	Update(db *gorm.DB, u *models.User) error
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, u *models.User) error {
	return db.Omit(clause.Associations).Create(u).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*models.User, error) {
	var u models.User
	if err := db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var u models.User
	if err := db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) EmailTaken(db *gorm.DB, email string, exceptID uint) (bool, error) {
	var count int64
	q := db.Model(&models.User{}).Where("email = ?", email)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *repositoryImpl) List(db *gorm.DB) ([]models.User, error) {
	var list []models.User
	err := db.Order("id ASC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Update(db *gorm.DB, u *models.User) error {
	return db.Omit(clause.Associations).Save(u).Error
}

// Delete remove as tarefas do usuário, os deals em que ele é o vendedor
// (com os filhos) e por fim o usuário. Deve rodar dentro de uma transação.
func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	if err := db.Where("owner_id = ?", id).Delete(&models.ActionItem{}).Error; err != nil {
		return err
	}
	if err := deal.DeleteWhere(db, "sales_rep_id = ?", id); err != nil {
		return err
	}
	return db.Delete(&models.User{}, id).Error
}
