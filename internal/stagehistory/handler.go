package stagehistory

import (
	"net/http"

	"github.com/KromaEnergia/api-crm/internal/apperrors"
	"github.com/KromaEnergia/api-crm/internal/models"
	"github.com/KromaEnergia/api-crm/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const moduleName = "stagehistory"

// Handler é somente leitura; as linhas nascem no create/update do deal.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Logger     logrus.FieldLogger
}

func NewHandler(db *gorm.DB, logger logrus.FieldLogger) *Handler {
	return &Handler{DB: db, Repository: NewRepository(), Logger: logger}
}

// GET /deals/{id}/stage_history
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
		utils.Fail(w, h.Logger, moduleName, "ListByDeal", apperrors.Persistence("Failed to list stage history", err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"stage_history": toDTOs(list)})
}
