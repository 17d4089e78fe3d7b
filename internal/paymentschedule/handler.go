package paymentschedule

import (
	"net/http"
	"strings"
	"time"

	"github.com/KromaEnergia/api-crm/internal/apperrors"
	"github.com/KromaEnergia/api-crm/internal/models"
	"github.com/KromaEnergia/api-crm/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const moduleName = "paymentschedule"

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Logger     logrus.FieldLogger
	// Now define o "hoje" usado quando uma parcela é paga sem data
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

func (h *Handler) today() models.Date {
	return models.NewDate(h.Now())
}

// GET /deals/{id}/payment_schedules
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
		utils.Fail(w, h.Logger, moduleName, "ListByDeal", apperrors.Persistence("Failed to list payment schedules", err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"payment_schedules": toDTOs(list)})
}

// POST /deals/{id}/payment_schedules
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	dealID, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	var in createPaymentRequest
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.WriteError(w, err)
		return
	}
	in.MilestoneName = strings.TrimSpace(in.MilestoneName)
	if err := utils.ValidateStruct(in); err != nil {
		utils.WriteError(w, err)
		return
	}
	if !in.Status.Valid() {
		utils.WriteError(w, apperrors.Validation("Invalid status specified"))
		return
	}
	amount, err := utils.Amount("amount_due", *in.AmountDue)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	p := models.PaymentSchedule{
		DealID:        dealID,
		MilestoneName: in.MilestoneName,
		AmountDue:     amount,
		DueDate:       *in.DueDate,
		Status:        in.Status,
		PaidOn:        in.PaidOn,
	}
	p.ApplyPaidOnRule(h.today())

	tx := h.DB.WithContext(r.Context()).Begin()
	if tx.Error != nil {
		utils.Fail(w, h.Logger, moduleName, "Create", apperrors.Persistence("Failed to create payment schedule", tx.Error))
		return
	}
	defer tx.Rollback()

	if err := utils.Exists(tx, &models.Deal{}, dealID, "Deal not found"); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Create", err)
		return
	}
	if err := h.Repository.Create(tx, &p); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Create", apperrors.Persistence("Failed to create payment schedule", err))
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.Fail(w, h.Logger, moduleName, "Create", apperrors.Persistence("Failed to create payment schedule", err))
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]any{
		"message":          "Payment schedule created successfully",
		"payment_schedule": toDTO(p),
	})
}

// GET /payment_schedules/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	p, err := h.Repository.FindByID(h.DB.WithContext(r.Context()), id)
	if err != nil {
		utils.Fail(w, h.Logger, moduleName, "Get", apperrors.FromDB("Payment schedule not found", err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"payment_schedule": toDTO(*p)})
}

// PUT /payment_schedules/{id}
// A regra de paid_on é reaplicada depois de copiar os campos.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	var in updatePaymentRequest
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.WriteError(w, err)
		return
	}

	tx := h.DB.WithContext(r.Context()).Begin()
	if tx.Error != nil {
		utils.Fail(w, h.Logger, moduleName, "Update", apperrors.Persistence("Failed to update payment schedule", tx.Error))
		return
	}
	defer tx.Rollback()

	p, err := h.Repository.FindByID(tx, id)
	if err != nil {
		utils.Fail(w, h.Logger, moduleName, "Update", apperrors.FromDB("Payment schedule not found", err))
		return
	}
	if err := apply(p, in); err != nil {
		utils.WriteError(w, err)
		return
	}
	p.ApplyPaidOnRule(h.today())

	if err := h.Repository.Update(tx, p); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Update", apperrors.Persistence("Failed to update payment schedule", err))
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.Fail(w, h.Logger, moduleName, "Update", apperrors.Persistence("Failed to update payment schedule", err))
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"message":          "Payment schedule updated successfully",
		"payment_schedule": toDTO(*p),
	})
}

func apply(p *models.PaymentSchedule, in updatePaymentRequest) error {
	if in.Status.Set && (in.Status.Null || !in.Status.Value.Valid()) {
		return apperrors.Validation("Invalid status specified")
	}
	if in.MilestoneName.Set {
		v, err := utils.RequiredText("milestone_name", in.MilestoneName)
		if err != nil {
			return err
		}
		p.MilestoneName = v
	}
	if in.AmountDue.Set {
		if in.AmountDue.Null {
			return apperrors.ValidationFields("Invalid fields", map[string]string{"amount_due": "required"})
		}
		v, err := utils.Amount("amount_due", in.AmountDue.Value)
		if err != nil {
			return err
		}
		p.AmountDue = v
	}
	if in.DueDate.Set {
		if in.DueDate.Null {
			return apperrors.ValidationFields("Invalid fields", map[string]string{"due_date": "required"})
		}
		p.DueDate = in.DueDate.Value
	}
	if in.Status.Set {
		p.Status = in.Status.Value
	}
	if in.PaidOn.Set {
		p.PaidOn = in.PaidOn.Ptr()
	}
	return nil
}

// DELETE /payment_schedules/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	tx := h.DB.WithContext(r.Context()).Begin()
	if tx.Error != nil {
		utils.Fail(w, h.Logger, moduleName, "Delete", apperrors.Persistence("Failed to delete payment schedule", tx.Error))
		return
	}
	defer tx.Rollback()

	if _, err := h.Repository.FindByID(tx, id); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Delete", apperrors.FromDB("Payment schedule not found", err))
		return
	}
	if err := h.Repository.Delete(tx, id); err != nil {
		utils.Fail(w, h.Logger, moduleName, "Delete", apperrors.Persistence("Failed to delete payment schedule", err))
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.Fail(w, h.Logger, moduleName, "Delete", apperrors.Persistence("Failed to delete payment schedule", err))
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Payment schedule deleted successfully")
}
