// internal/models/user.go
package models

import "time"

// Role define o papel do usuário no CRM.
type Role string

const (
	RoleOwner    Role = "Owner"
	RoleAdmin    Role = "Admin"
	RoleSalesRep Role = "SalesRep"
)

// Roles lista os papéis aceitos, na ordem em que aparecem nas mensagens.
var Roles = []Role{RoleOwner, RoleAdmin, RoleSalesRep}

func (r Role) Valid() bool {
	for _, v := range Roles {
		if r == v {
			return true
		}
	}
	return false
}

type User struct {
	ID            uint         `gorm:"primaryKey"`
	Name          string       `gorm:"size:255;not null"`
	Email         string       `gorm:"size:255;uniqueIndex;not null"`
	Role          Role         `gorm:"size:20;not null"`
	PasswordHash  string       `gorm:"size:255;not null"`
	DealsAssigned []Deal       `gorm:"foreignKey:SalesRepID;constraint:OnDelete:CASCADE"`
	ActionItems   []ActionItem `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
