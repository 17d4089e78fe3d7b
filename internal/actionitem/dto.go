package actionitem

import (
	"time"

	"github.com/KromaEnergia/api-crm/internal/models"
)

// createActionItemRequest é usado em POST /deals/{id}/action_items
type createActionItemRequest struct {
	Description string       `json:"description" validate:"required"`
	OwnerID     *uint        `json:"owner_id" validate:"required"`
	DueDate     *models.Date `json:"due_date" validate:"required"`
}

// updateActionItemRequest é usado em PUT /action_items/{id}.
// completed_at null reabre a tarefa.
type updateActionItemRequest struct {
	Description models.Optional[string]      `json:"description"`
	OwnerID     models.Optional[uint]        `json:"owner_id"`
	DueDate     models.Optional[models.Date] `json:"due_date"`
	CompletedAt models.Optional[time.Time]   `json:"completed_at"`
}

type ActionItemDTO struct {
	ID          uint        `json:"id"`
	DealID      uint        `json:"deal_id"`
	Description string      `json:"description"`
	OwnerID     uint        `json:"owner_id"`
	OwnerName   *string     `json:"owner_name"`
	DueDate     models.Date `json:"due_date"`
	CompletedAt *time.Time  `json:"completed_at"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func toDTO(a models.ActionItem) ActionItemDTO {
	dto := ActionItemDTO{
		ID:          a.ID,
		DealID:      a.DealID,
		Description: a.Description,
		OwnerID:     a.OwnerID,
		DueDate:     a.DueDate,
		CompletedAt: a.CompletedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if a.Owner != nil {
		dto.OwnerName = &a.Owner.Name
	}
	return dto
}

func toDTOs(list []models.ActionItem) []ActionItemDTO {
	out := make([]ActionItemDTO, 0, len(list))
	for _, a := range list {
		out = append(out, toDTO(a))
	}
	return out
}
