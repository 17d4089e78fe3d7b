package stagehistory

import (
	"time"

	"github.com/KromaEnergia/api-crm/internal/models"
)

type StageHistoryDTO struct {
	ID        uint       `json:"id"`
	DealID    uint       `json:"deal_id"`
	Stage     string     `json:"stage"`
	EnteredAt time.Time  `json:"entered_at"`
	ExitedAt  *time.Time `json:"exited_at"`
}

func toDTOs(list []models.StageHistory) []StageHistoryDTO {
	out := make([]StageHistoryDTO, 0, len(list))
	for _, s := range list {
		out = append(out, StageHistoryDTO{
			ID:        s.ID,
			DealID:    s.DealID,
			Stage:     s.Stage,
			EnteredAt: s.EnteredAt.UTC(),
			ExitedAt:  utcPtr(s.ExitedAt),
		})
	}
	return out
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
