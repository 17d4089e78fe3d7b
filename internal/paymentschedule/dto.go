package paymentschedule

import (
	"time"

	"github.com/KromaEnergia/api-crm/internal/models"
	"github.com/shopspring/decimal"
)

// createPaymentRequest é usado em POST /deals/{id}/payment_schedules
type createPaymentRequest struct {
	MilestoneName string               `json:"milestone_name" validate:"required,max=255"`
	AmountDue     *decimal.Decimal     `json:"amount_due" validate:"required"`
	DueDate       *models.Date         `json:"due_date" validate:"required"`
	Status        models.PaymentStatus `json:"status" validate:"required"`
	// só vale quando status = paid
	PaidOn *models.Date `json:"paid_on"`
}

// updatePaymentRequest é usado em PUT /payment_schedules/{id}
type updatePaymentRequest struct {
	MilestoneName models.Optional[string]               `json:"milestone_name"`
	AmountDue     models.Optional[decimal.Decimal]      `json:"amount_due"`
	DueDate       models.Optional[models.Date]          `json:"due_date"`
	Status        models.Optional[models.PaymentStatus] `json:"status"`
	PaidOn        models.Optional[models.Date]          `json:"paid_on"`
}

type PaymentScheduleDTO struct {
	ID            uint                 `json:"id"`
	DealID        uint                 `json:"deal_id"`
	MilestoneName string               `json:"milestone_name"`
	AmountDue     string               `json:"amount_due"`
	DueDate       models.Date          `json:"due_date"`
	Status        models.PaymentStatus `json:"status"`
	PaidOn        *models.Date         `json:"paid_on"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

func toDTO(p models.PaymentSchedule) PaymentScheduleDTO {
	return PaymentScheduleDTO{
		ID:            p.ID,
		DealID:        p.DealID,
		MilestoneName: p.MilestoneName,
		AmountDue:     p.AmountDue.StringFixed(2),
		DueDate:       p.DueDate,
		Status:        p.Status,
		PaidOn:        p.PaidOn,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toDTOs(list []models.PaymentSchedule) []PaymentScheduleDTO {
	out := make([]PaymentScheduleDTO, 0, len(list))
	for _, p := range list {
		out = append(out, toDTO(p))
	}
	return out
}
