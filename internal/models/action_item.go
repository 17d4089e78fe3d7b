// internal/models/action_item.go
package models

import "time"

// ActionItem é uma tarefa de um deal atribuída a um usuário.
type ActionItem struct {
	ID          uint   `gorm:"primaryKey"`
	DealID      uint   `gorm:"not null;index"`
	Description string `gorm:"type:text;not null"`
	OwnerID     uint   `gorm:"not null;index"`
	Owner       *User  `gorm:"foreignKey:OwnerID"`
	DueDate     Date   `gorm:"not null"`
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
