package deal

import (
	"net/http"
	"strings"
	"time"

	"github.com/KromaEnergia/api-crm/internal/apperrors"
	"github.com/KromaEnergia/api-crm/internal/auth"
	"github.com/KromaEnergia/api-crm/internal/models"
	"github.com/KromaEnergia/api-crm/internal/stagehistory"
	"github.com/KromaEnergia/api-crm/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const moduleName = "deal"

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Logger     logrus.FieldLogger
	// Now marca entrada e saída das etapas
	Now func() time.Time
}

func NewHandler(db *gorm.DB, logger logrus.FieldLogger) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Logger:     logger,
		Now:        time.Now,
	}
}

// GET /deals (token obrigatório)
// Owner/Admin veem todos; SalesRep só os seus.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		utils.WriteError(w, apperrors.Unauthorized("Missing or invalid token"))
		return
	}
	list, err := h.Repository.List(h.DB.WithContext(r.Context()), auth.DealScope(p))
	if err != nil {
		utils.Fail(w, h.Logger, moduleName, "List", apperrors.Persistence("Failed to list deals", err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"deals": toDTOs(list)})
}

// GET /deals/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	d, err := h.Repository.FindByID(h.DB.WithContext(r.Context()), id)
	if err != nil {
		utils.Fail(w, h.Logger, moduleName, "Get", apperrors.FromDB("Deal not found", err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"deal": toDTO(*d)})
}

// POST /deals
// Cria o deal e a primeira linha do histórico de etapas na mesma transação.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in createDealRequest
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.WriteError(w, err)
		return
	}
	in.Stage = strings.TrimSpace(in.Stage)
	if err := utils.ValidateStruct(in); err != nil {
		utils.WriteError(w, err)
		return
	}
	value, err := utils.Amount("estimated_value", *in.EstimatedValue)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	d := models.Deal{
		ClientID:       *in.ClientID,
		SalesRepID:     *in.SalesRepID,
		Stage:          in.Stage,
		EstimatedValue: value,
		Probability:    *in.Probability,
		ExpectedClose:  in.ExpectedClose,
		WonOn:          in.WonOn,
		LostOn:         in.LostOn,
	}

	tx := h.DB.WithContext(r.Context()).Begin()
	if tx.Error != nil {
		utils.Fail(w, h.Logger, moduleName, "Create", apperrors.Persistence("Failed to create deal", tx.Error))
		return
	}
	defer tx.Rollback()

	if err := checkReferences(tx, d.ClientID, d.SalesRepID); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Create", err)
		return
	}
	if err := h.Repository.Create(tx, &d); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Create", apperrors.FromDB("Failed to create deal", err))
		return
	}
	if err := stagehistory.Open(tx, d.ID, d.Stage, h.Now()); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Create", apperrors.Persistence("Failed to create deal", err))
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.Fail(w, h.Logger, moduleName, "Create", apperrors.Persistence("Failed to create deal", err))
		return
	}

	h.respondWithDeal(w, r, http.StatusCreated, "Deal created successfully", d)
}

// PUT /deals/{id}
// Mudança de etapa fecha a linha aberta da etapa anterior e abre a nova.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	var in updateDealRequest
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.WriteError(w, err)
		return
	}

	tx := h.DB.WithContext(r.Context()).Begin()
	if tx.Error != nil {
		utils.Fail(w, h.Logger, moduleName, "Update", apperrors.Persistence("Failed to update deal", tx.Error))
		return
	}
	defer tx.Rollback()

	var d models.Deal
	if err := tx.First(&d, id).Error; err != nil {
		utils.Fail(w, h.Logger, moduleName, "Update", apperrors.FromDB("Deal not found", err))
		return
	}
	previousStage := d.Stage

	if err := apply(tx, &d, in); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Update", err)
		return
	}
	if err := h.Repository.Update(tx, &d); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Update", apperrors.FromDB("Failed to update deal", err))
		return
	}
	if err := stagehistory.Transition(tx, d.ID, previousStage, d.Stage, h.Now()); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Update", apperrors.Persistence("Failed to update deal", err))
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.Fail(w, h.Logger, moduleName, "Update", apperrors.Persistence("Failed to update deal", err))
		return
	}

	h.respondWithDeal(w, r, http.StatusOK, "Deal updated successfully", d)
}

// apply copia para d os campos enviados, revalidando as FKs alteradas.
func apply(tx *gorm.DB, d *models.Deal, in updateDealRequest) error {
	if in.ClientID.Set {
		if in.ClientID.Null {
			return apperrors.ValidationFields("Invalid fields", map[string]string{"client_id": "required"})
		}
		if in.ClientID.Value != d.ClientID {
			if err := utils.Exists(tx, &models.Client{}, in.ClientID.Value, "Client not found"); err != nil {
				return err
			}
			d.ClientID = in.ClientID.Value
		}
	}
	if in.SalesRepID.Set {
		if in.SalesRepID.Null {
			return apperrors.ValidationFields("Invalid fields", map[string]string{"sales_rep_id": "required"})
		}
		if in.SalesRepID.Value != d.SalesRepID {
			if err := utils.Exists(tx, &models.User{}, in.SalesRepID.Value, "Sales Rep (User) not found"); err != nil {
				return err
			}
			d.SalesRepID = in.SalesRepID.Value
		}
	}
	if in.Stage.Set {
		v, err := utils.RequiredText("stage", in.Stage)
		if err != nil {
			return err
		}
		if err := utils.ValidateVar("stage", v, "max=100"); err != nil {
			return err
		}
		d.Stage = v
	}
	if in.EstimatedValue.Set {
		if in.EstimatedValue.Null {
			return apperrors.ValidationFields("Invalid fields", map[string]string{"estimated_value": "required"})
		}
		v, err := utils.Amount("estimated_value", in.EstimatedValue.Value)
		if err != nil {
			return err
		}
		d.EstimatedValue = v
	}
	if in.Probability.Set {
		if in.Probability.Null {
			return apperrors.ValidationFields("Invalid fields", map[string]string{"probability": "required"})
		}
		if err := utils.ValidateVar("probability", in.Probability.Value, "gte=0,lte=1"); err != nil {
			return err
		}
		d.Probability = in.Probability.Value
	}
	if in.ExpectedClose.Set {
		if in.ExpectedClose.Null {
			return apperrors.ValidationFields("Invalid fields", map[string]string{"expected_close": "required"})
		}
		d.ExpectedClose = in.ExpectedClose.Ptr()
	}
	if in.WonOn.Set {
		d.WonOn = in.WonOn.Ptr()
	}
	if in.LostOn.Set {
		d.LostOn = in.LostOn.Ptr()
	}
	return nil
}

// DELETE /deals/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	tx := h.DB.WithContext(r.Context()).Begin()
	if tx.Error != nil {
		utils.Fail(w, h.Logger, moduleName, "Delete", apperrors.Persistence("Failed to delete deal", tx.Error))
		return
	}
	defer tx.Rollback()

	if err := utils.Exists(tx, &models.Deal{}, id, "Deal not found"); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Delete", err)
		return
	}
	if err := h.Repository.Delete(tx, id); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Delete", apperrors.Persistence("Failed to delete deal", err))
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.Fail(w, h.Logger, moduleName, "Delete", apperrors.Persistence("Failed to delete deal", err))
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Deal deleted successfully")
}

// respondWithDeal recarrega o deal (com cliente e vendedor) após o commit.
func (h *Handler) respondWithDeal(w http.ResponseWriter, r *http.Request, status int, msg string, d models.Deal) {
	if loaded, err := h.Repository.FindByID(h.DB.WithContext(r.Context()), d.ID); err == nil {
		d = *loaded
	} else {
		h.Logger.WithField("deal_id", d.ID).WithError(err).Warn("deal salvo mas não recarregado")
	}
	utils.WriteJSON(w, status, map[string]any{"message": msg, "deal": toDTO(d)})
}

func checkReferences(tx *gorm.DB, clientID, salesRepID uint) error {
	if err := utils.Exists(tx, &models.Client{}, clientID, "Client not found"); err != nil {
		return err
	}
	return utils.Exists(tx, &models.User{}, salesRepID, "Sales Rep (User) not found")
}
