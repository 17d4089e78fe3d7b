// internal/models/client.go
package models

import "time"

// Client é a empresa atendida; o email é único entre clientes.
type Client struct {
	ID              uint      `gorm:"primaryKey"`
	Company         string    `gorm:"size:255;not null"`
	ContactName     string    `gorm:"size:255;not null"`
	Email           string    `gorm:"size:255;uniqueIndex;not null"`
	Phone           *string   `gorm:"size:50"`
	ExternalBoardID *string   `gorm:"size:255"`
	Deals           []Deal    `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
