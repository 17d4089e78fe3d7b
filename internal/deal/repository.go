package deal

import (
	"github.com/KromaEnergia/api-crm/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(db *gorm.DB, d *models.Deal) error
	FindByID(db *gorm.DB, id uint) (*models.Deal, error)
	List(db *gorm.DB, salesRepID *uint) ([]models.Deal, error)
	Update(db *gorm.DB, d *models.Deal) error
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, d *models.Deal) error {
	return db.Omit(clause.Associations).Create(d).Error
}

// FindByID carrega o deal com cliente e vendedor.
func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Deal, error) {
	var d models.Deal
	if err := db.Preload("Client").Preload("SalesRep").First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// List devolve os deals do mais novo para o mais antigo.
// salesRepID nil lista todos.
func (r *repositoryImpl) List(db *gorm.DB, salesRepID *uint) ([]models.Deal, error) {
	q := db.Preload("Client").Preload("SalesRep")
	if salesRepID != nil {
		q = q.Where("sales_rep_id = ?", *salesRepID)
	}
	var list []models.Deal
	err := q.Order("created_at DESC").Order("id DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Update(db *gorm.DB, d *models.Deal) error {
	return db.Omit(clause.Associations).Save(d).Error
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	return DeleteWhere(db, "id = ?", id)
}

// DeleteWhere apaga os deals que casam com a condição e todos os seus filhos.
// Também usado pelos deletes de cliente e de usuário, dentro da transação deles.
func DeleteWhere(tx *gorm.DB, query string, args ...any) error {
	var ids []uint
	if err := tx.Model(&models.Deal{}).Where(query, args...).Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	for _, child := range []any{&models.ActionItem{}, &models.PaymentSchedule{}, &models.StageHistory{}} {
		if err := tx.Where("deal_id IN ?", ids).Delete(child).Error; err != nil {
			return err
		}
	}
	return tx.Where("id IN ?", ids).Delete(&models.Deal{}).Error
}
