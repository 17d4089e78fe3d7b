package user

import (
	"errors"
	"strings"

	"github.com/KromaEnergia/api-crm/internal/models"
	"github.com/KromaEnergia/api-crm/internal/utils"
	"gorm.io/gorm"
)

// SeedOwner cria um usuário Owner ou, se o email já existir, promove-o a Owner
// e troca a senha. Devolve created=true quando o usuário é novo.
func SeedOwner(db *gorm.DB, name, email, password string) (u models.User, created bool, err error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" {
		return u, false, errors.New("email e senha são obrigatórios")
	}
	if err := utils.ValidateVar("email", email, "email"); err != nil {
		return u, false, err
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return u, false, err
	}

	repo := NewRepository()
	err = db.Transaction(func(tx *gorm.DB) error {
		existing, findErr := repo.FindByEmail(tx, email)
		switch {
		case findErr == nil:
			existing.Role = models.RoleOwner
			existing.PasswordHash = hash
			if name != "" {
				existing.Name = name
			}
			u = *existing
			return repo.Update(tx, &u)
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			if name == "" {
				name = "Owner"
			}
			u = models.User{Name: name, Email: email, Role: models.RoleOwner, PasswordHash: hash}
			created = true
			return repo.Create(tx, &u)
		default:
			return findErr
		}
	})
	return u, created, err
}
