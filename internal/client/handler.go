package client

import (
	"net/http"
	"strings"

	"github.com/KromaEnergia/api-crm/internal/apperrors"
	"github.com/KromaEnergia/api-crm/internal/models"
	"github.com/KromaEnergia/api-crm/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const moduleName = "client"

// Handler expõe o CRUD de clientes.
type Handler struct {
	DB          *gorm.DB
	Repository  Repository
	Logger      logrus.FieldLogger
	PhoneRegion string
}

func NewHandler(db *gorm.DB, logger logrus.FieldLogger, phoneRegion string) *Handler {
	return &Handler{
		DB:          db,
		Repository:  NewRepository(),
		Logger:      logger,
		PhoneRegion: phoneRegion,
	}
}

// GET /clients
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.List(h.DB.WithContext(r.Context()))
	if err != nil {
		utils.Fail(w, h.Logger, moduleName, "List", apperrors.Persistence("Failed to list clients", err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"clients": toDTOs(list)})
}

// GET /clients/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	c, err := h.Repository.FindByID(h.DB.WithContext(r.Context()), id)
	if err != nil {
		utils.Fail(w, h.Logger, moduleName, "Get", apperrors.FromDB("Client not found", err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"client": toDTO(*c)})
}

// POST /clients
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in createClientRequest
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.WriteError(w, err)
		return
	}
	in.Company = strings.TrimSpace(in.Company)
	in.ContactName = strings.TrimSpace(in.ContactName)
	in.Email = strings.TrimSpace(in.Email)
	if err := utils.ValidateStruct(in); err != nil {
		utils.WriteError(w, err)
		return
	}

	c := models.Client{
		Company:         in.Company,
		ContactName:     in.ContactName,
		Email:           in.Email,
		ExternalBoardID: utils.BlankToNil(in.ExternalBoardID),
	}
	if phone := utils.BlankToNil(in.Phone); phone != nil {
		normalized := utils.NormalizePhone(*phone, h.PhoneRegion)
		c.Phone = &normalized
	}

	tx := h.DB.WithContext(r.Context()).Begin()
	if tx.Error != nil {
		utils.Fail(w, h.Logger, moduleName, "Create", apperrors.Persistence("Failed to create client", tx.Error))
		return
	}
	defer tx.Rollback()

	taken, err := h.Repository.EmailTaken(tx, c.Email, 0)
	if err != nil {
		utils.Fail(w, h.Logger, moduleName, "Create", apperrors.Persistence("Failed to create client", err))
		return
	}
	if taken {
		utils.WriteError(w, apperrors.Conflict("Client with this email already exists"))
		return
	}
	if err := h.Repository.Create(tx, &c); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Create", dbError("Failed to create client", err))
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.Fail(w, h.Logger, moduleName, "Create", dbError("Failed to create client", err))
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]any{
		"message":   "Client created successfully",
		"client_id": c.ID,
		"client":    toDTO(c),
	})
}

// PUT /clients/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	var in updateClientRequest
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.WriteError(w, err)
		return
	}

	tx := h.DB.WithContext(r.Context()).Begin()
	if tx.Error != nil {
		utils.Fail(w, h.Logger, moduleName, "Update", apperrors.Persistence("Failed to update client", tx.Error))
		return
	}
	defer tx.Rollback()

	c, err := h.Repository.FindByID(tx, id)
	if err != nil {
		utils.Fail(w, h.Logger, moduleName, "Update", apperrors.FromDB("Client not found", err))
		return
	}
	if err := h.apply(tx, c, in); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Update", err)
		return
	}
	if err := h.Repository.Update(tx, c); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Update", dbError("Failed to update client", err))
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.Fail(w, h.Logger, moduleName, "Update", apperrors.Persistence("Failed to update client", err))
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Client updated successfully",
		"client":  toDTO(*c),
	})
}

// apply copia para c os campos enviados no update.
func (h *Handler) apply(tx *gorm.DB, c *models.Client, in updateClientRequest) error {
	if in.Company.Set {
		v, err := utils.RequiredText("company", in.Company)
		if err != nil {
			return err
		}
		c.Company = v
	}
	if in.ContactName.Set {
		v, err := utils.RequiredText("contact_name", in.ContactName)
		if err != nil {
			return err
		}
		c.ContactName = v
	}
	if in.Email.Set {
		v, err := utils.RequiredText("email", in.Email)
		if err != nil {
			return err
		}
		if err := utils.ValidateVar("email", v, "email"); err != nil {
			return err
		}
		if v != c.Email {
			taken, err := h.Repository.EmailTaken(tx, v, c.ID)
			if err != nil {
				return apperrors.Persistence("Failed to update client", err)
			}
			if taken {
				return apperrors.Conflict("Client with this email already exists")
			}
		}
		c.Email = v
	}
	if in.Phone.Set {
		phone := utils.BlankToNil(in.Phone.Ptr())
		if phone != nil {
			normalized := utils.NormalizePhone(*phone, h.PhoneRegion)
			phone = &normalized
		}
		c.Phone = phone
	}
	if in.ExternalBoardID.Set {
		c.ExternalBoardID = utils.BlankToNil(in.ExternalBoardID.Ptr())
	}
	return nil
}

// DELETE /clients/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	tx := h.DB.WithContext(r.Context()).Begin()
	if tx.Error != nil {
		utils.Fail(w, h.Logger, moduleName, "Delete", apperrors.Persistence("Failed to delete client", tx.Error))
		return
	}
	defer tx.Rollback()

	if _, err := h.Repository.FindByID(tx, id); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Delete", apperrors.FromDB("Client not found", err))
		return
	}
	if err := h.Repository.Delete(tx, id); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Delete", apperrors.Persistence("Failed to delete client", err))
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.Fail(w, h.Logger, moduleName, "Delete", apperrors.Persistence("Failed to delete client", err))
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Client deleted successfully")
}

// dbError trata o unique do email como conflito.
func dbError(msg string, err error) error {
	appErr := apperrors.FromDB(msg, err)
	if appErr.Kind == apperrors.KindConflict {
		return apperrors.Conflict("Client with this email already exists")
	}
	return appErr
}
