package user

import (
	"errors"
	"net/http"
	"strings"

	"github.com/KromaEnergia/api-crm/internal/apperrors"
	"github.com/KromaEnergia/api-crm/internal/auth"
	"github.com/KromaEnergia/api-crm/internal/models"
	"github.com/KromaEnergia/api-crm/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const moduleName = "user"

// Handler cuida do cadastro de usuários e do login.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Issuer     *auth.TokenIssuer
	Logger     logrus.FieldLogger
	// CheckPassword compara hash e senha; trocado nos testes.
	CheckPassword func(hash, password string) bool
}

func NewHandler(db *gorm.DB, issuer *auth.TokenIssuer, logger logrus.FieldLogger) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Issuer:        issuer,
		Logger:        logger,
		CheckPassword: utils.CheckPassword,
	}
}

// POST /users
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var in signupRequest
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.WriteError(w, err)
		return
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := utils.ValidateStruct(in); err != nil {
		utils.WriteError(w, err)
		return
	}
	if !in.Role.Valid() {
		utils.WriteError(w, apperrors.Validation("Invalid role specified"))
		return
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		utils.Fail(w, h.Logger, moduleName, "Signup", apperrors.Persistence("Internal server error", err))
		return
	}
	u := models.User{Name: in.Name, Email: in.Email, Role: in.Role, PasswordHash: hash}

	tx := h.DB.WithContext(r.Context()).Begin()
	if tx.Error != nil {
		utils.Fail(w, h.Logger, moduleName, "Signup", apperrors.Persistence("Internal server error", tx.Error))
		return
	}
	defer tx.Rollback()

	taken, err := h.Repository.EmailTaken(tx, u.Email, 0)
	if err != nil {
		utils.Fail(w, h.Logger, moduleName, "Signup", apperrors.Persistence("Internal server error", err))
		return
	}
	if taken {
		utils.WriteError(w, apperrors.Conflict("User with this email already exists"))
		return
	}
	if err := h.Repository.Create(tx, &u); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Signup", dbError("Internal server error", err))
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.Fail(w, h.Logger, moduleName, "Signup", dbError("Internal server error", err))
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"user":    toDTO(u),
	})
}

// POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.WriteError(w, apperrors.Validation("Missing email or password"))
		return
	}
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		utils.WriteError(w, apperrors.Validation("Missing email or password"))
		return
	}

	u, err := h.Repository.FindByEmail(h.DB.WithContext(r.Context()), in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.CheckPassword(utils.DummyPasswordHash(), in.Password)
			utils.WriteError(w, apperrors.Unauthorized("Invalid email or password"))
			return
		}
		utils.Fail(w, h.Logger, moduleName, "Login", apperrors.Persistence("Internal server error", err))
		return
	}
	if !h.CheckPassword(u.PasswordHash, in.Password) {
		utils.WriteError(w, apperrors.Unauthorized("Invalid email or password"))
		return
	}

	token, expiresAt, err := h.Issuer.Issue(*u)
	if err != nil {
		utils.Fail(w, h.Logger, moduleName, "Login", apperrors.Persistence("Internal server error", err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, loginResponse{Token: token, User: toDTO(*u), ExpiresAt: expiresAt.UTC()})
}

// GET /users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.List(h.DB.WithContext(r.Context()))
	if err != nil {
		utils.Fail(w, h.Logger, moduleName, "List", apperrors.Persistence("Failed to list users", err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"users": toDTOs(list)})
}

// GET /users/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	u, err := h.Repository.FindByID(h.DB.WithContext(r.Context()), id)
	if err != nil {
		utils.Fail(w, h.Logger, moduleName, "Get", apperrors.FromDB("User not found", err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"user": toDTO(*u)})
}

// PUT /users/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	var in updateUserRequest
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.WriteError(w, err)
		return
	}

	tx := h.DB.WithContext(r.Context()).Begin()
	if tx.Error != nil {
		utils.Fail(w, h.Logger, moduleName, "Update", apperrors.Persistence("Failed to update user", tx.Error))
		return
	}
	defer tx.Rollback()

	u, err := h.Repository.FindByID(tx, id)
	if err != nil {
		utils.Fail(w, h.Logger, moduleName, "Update", apperrors.FromDB("User not found", err))
		return
	}
	if err := h.apply(tx, u, in); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Update", err)
		return
	}
	if err := h.Repository.Update(tx, u); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Update", dbError("Failed to update user", err))
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.Fail(w, h.Logger, moduleName, "Update", apperrors.Persistence("Failed to update user", err))
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "User updated successfully",
		"user":    toDTO(*u),
	})
}

func (h *Handler) apply(tx *gorm.DB, u *models.User, in updateUserRequest) error {
	if in.Name.Set {
		v, err := utils.RequiredText("name", in.Name)
		if err != nil {
			return err
		}
		u.Name = v
	}
	if in.Email.Set {
		v, err := utils.RequiredText("email", in.Email)
		if err != nil {
			return err
		}
		if err := utils.ValidateVar("email", v, "email"); err != nil {
			return err
		}
		if v != u.Email {
			taken, err := h.Repository.EmailTaken(tx, v, u.ID)
			if err != nil {
				return apperrors.Persistence("Failed to update user", err)
			}
			if taken {
				return apperrors.Conflict("User with this email already exists")
			}
		}
		u.Email = v
	}
	if in.Role.Set {
		if in.Role.Null || !in.Role.Value.Valid() {
			return apperrors.Validation("Invalid role specified")
		}
		u.Role = in.Role.Value
	}
	if in.Password.Set {
		if in.Password.Null || in.Password.Value == "" {
			return apperrors.ValidationFields("Invalid fields", map[string]string{"password": "required"})
		}
		hash, err := utils.HashPassword(in.Password.Value)
		if err != nil {
			return apperrors.Persistence("Failed to update user", err)
		}
		u.PasswordHash = hash
	}
	return nil
}

// DELETE /users/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	tx := h.DB.WithContext(r.Context()).Begin()
	if tx.Error != nil {
		utils.Fail(w, h.Logger, moduleName, "Delete", apperrors.Persistence("Failed to delete user", tx.Error))
		return
	}
	defer tx.Rollback()

	if _, err := h.Repository.FindByID(tx, id); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Delete", apperrors.FromDB("User not found", err))
		return
	}
	if err := h.Repository.Delete(tx, id); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Delete", apperrors.Persistence("Failed to delete user", err))
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.Fail(w, h.Logger, moduleName, "Delete", apperrors.Persistence("Failed to delete user", err))
		return
	}
	utils.WriteMessage(w, http.StatusOK, "User deleted successfully")
}

// dbError trata o unique do email como conflito.
func dbError(msg string, err error) error {
	appErr := apperrors.FromDB(msg, err)
	if appErr.Kind == apperrors.KindConflict {
		return apperrors.Conflict("User with this email already exists")
	}
	return appErr
}
