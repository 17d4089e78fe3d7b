package actionitem

import (
	"net/http"
	"strings"

	"github.com/KromaEnergia/api-crm/internal/apperrors"
	"github.com/KromaEnergia/api-crm/internal/models"
	"github.com/KromaEnergia/api-crm/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const moduleName = "actionitem"

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Logger     logrus.FieldLogger
}

func NewHandler(db *gorm.DB, logger logrus.FieldLogger) *Handler {
	return &Handler{DB: db, Repository: NewRepository(), Logger: logger}
}

// GET /deals/{id}/action_items
func (h *Handler) ListByDeal(w http.ResponseWriter, r *http.Request) {
	dealID, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	db := h.DB.WithContext(r.Context())
	if err := utils.Exists(db, &models.Deal{}, dealID, "Deal not found"); err != nil {
		utils.Fail(w, h.Logger, moduleName, "ListByDeal", err)
		return
	}
	list, err := h.Repository.ListByDeal(db, dealID)
	if err != nil {
		utils.Fail(w, h.Logger, moduleName, "ListByDeal", apperrors.Persistence("Failed to list action items", err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"action_items": toDTOs(list)})
}

// POST /deals/{id}/action_items
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	dealID, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	var in createActionItemRequest
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.WriteError(w, err)
		return
	}
	in.Description = strings.TrimSpace(in.Description)
	if err := utils.ValidateStruct(in); err != nil {
		utils.WriteError(w, err)
		return
	}

	a := models.ActionItem{
		DealID:      dealID,
		Description: in.Description,
		OwnerID:     *in.OwnerID,
		DueDate:     *in.DueDate,
	}

	tx := h.DB.WithContext(r.Context()).Begin()
	if tx.Error != nil {
		utils.Fail(w, h.Logger, moduleName, "Create", apperrors.Persistence("Failed to create action item", tx.Error))
		return
	}
	defer tx.Rollback()

	if err := utils.Exists(tx, &models.Deal{}, dealID, "Deal not found"); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Create", err)
		return
	}
	if err := utils.Exists(tx, &models.User{}, a.OwnerID, "Owner (User) not found"); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Create", err)
		return
	}
	if err := h.Repository.Create(tx, &a); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Create", apperrors.Persistence("Failed to create action item", err))
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.Fail(w, h.Logger, moduleName, "Create", apperrors.Persistence("Failed to create action item", err))
		return
	}

	h.respond(w, r, http.StatusCreated, "Action item created successfully", a)
}

// GET /action_items/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	a, err := h.Repository.FindByID(h.DB.WithContext(r.Context()), id)
	if err != nil {
		utils.Fail(w, h.Logger, moduleName, "Get", apperrors.FromDB("Action item not found", err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"action_item": toDTO(*a)})
}

// PUT /action_items/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	var in updateActionItemRequest
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.WriteError(w, err)
		return
	}

	tx := h.DB.WithContext(r.Context()).Begin()
	if tx.Error != nil {
		utils.Fail(w, h.Logger, moduleName, "Update", apperrors.Persistence("Failed to update action item", tx.Error))
		return
	}
	defer tx.Rollback()

	var a models.ActionItem
	if err := tx.First(&a, id).Error; err != nil {
		utils.Fail(w, h.Logger, moduleName, "Update", apperrors.FromDB("Action item not found", err))
		return
	}
	if err := apply(tx, &a, in); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Update", err)
		return
	}
	if err := h.Repository.Update(tx, &a); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Update", apperrors.Persistence("Failed to update action item", err))
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.Fail(w, h.Logger, moduleName, "Update", apperrors.Persistence("Failed to update action item", err))
		return
	}

	h.respond(w, r, http.StatusOK, "Action item updated successfully", a)
}

func apply(tx *gorm.DB, a *models.ActionItem, in updateActionItemRequest) error {
	if in.Description.Set {
		v, err := utils.RequiredText("description", in.Description)
		if err != nil {
			return err
		}
		a.Description = v
	}
	if in.OwnerID.Set {
		if in.OwnerID.Null {
			return apperrors.ValidationFields("Invalid fields", map[string]string{"owner_id": "required"})
		}
		if in.OwnerID.Value != a.OwnerID {
			if err := utils.Exists(tx, &models.User{}, in.OwnerID.Value, "Owner (User) not found"); err != nil {
				return err
			}
			a.OwnerID = in.OwnerID.Value
		}
	}
	if in.DueDate.Set {
		if in.DueDate.Null {
			return apperrors.ValidationFields("Invalid fields", map[string]string{"due_date": "required"})
		}
		a.DueDate = in.DueDate.Value
	}
	if in.CompletedAt.Set {
		a.CompletedAt = in.CompletedAt.Ptr()
		if a.CompletedAt != nil {
			utc := a.CompletedAt.UTC()
			a.CompletedAt = &utc
		}
	}
	return nil
}

// DELETE /action_items/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	tx := h.DB.WithContext(r.Context()).Begin()
	if tx.Error != nil {
		utils.Fail(w, h.Logger, moduleName, "Delete", apperrors.Persistence("Failed to delete action item", tx.Error))
		return
	}
	defer tx.Rollback()

	if err := utils.Exists(tx, &models.ActionItem{}, id, "Action item not found"); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Delete", err)
		return
	}
	if err := h.Repository.Delete(tx, id); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Delete", apperrors.Persistence("Failed to delete action item", err))
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.Fail(w, h.Logger, moduleName, "Delete", apperrors.Persistence("Failed to delete action item", err))
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Action item deleted successfully")
}

// respond recarrega a tarefa com o dono depois do commit.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, status int, msg string, a models.ActionItem) {
	if loaded, err := h.Repository.FindByID(h.DB.WithContext(r.Context()), a.ID); err == nil {
		a = *loaded
	} else {
		h.Logger.WithField("action_item_id", a.ID).WithError(err).Warn("tarefa salva mas não recarregada")
	}
	utils.WriteJSON(w, status, map[string]any{"message": msg, "action_item": toDTO(a)})
}
