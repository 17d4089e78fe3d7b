// internal/models/stage_history.go
package models

import "time"

// StageHistory registra o intervalo em que um deal ficou numa etapa.
// ExitedAt nulo indica a etapa em aberto.
type StageHistory struct {
	ID        uint      `gorm:"primaryKey"`
	DealID    uint      `gorm:"not null;index"`
	Stage     string    `gorm:"size:100;not null"`
	EnteredAt time.Time `gorm:"not null;index"`
	ExitedAt  *time.Time
}

// TableName mantém o nome usado pelo banco legado.
func (StageHistory) TableName() string {
	return "stage_histories"
}
