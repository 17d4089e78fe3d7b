// internal/models/deal.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deal é uma oportunidade de venda ligada a um cliente e a um vendedor.
// Os filhos (parcelas, histórico de etapas e tarefas) são apagados junto com o deal.
type Deal struct {
	ID             uint            `gorm:"primaryKey"`
	ClientID       uint            `gorm:"not null;index"`
	Client         *Client         `gorm:"foreignKey:ClientID"`
	SalesRepID     uint            `gorm:"not null;index"`
	SalesRep       *User           `gorm:"foreignKey:SalesRepID"`
	Stage          string          `gorm:"size:100;not null"`
	EstimatedValue decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Probability    float64         `gorm:"not null"`
	ExpectedClose  *Date
	WonOn          *Date
	LostOn         *Date

	PaymentSchedules []PaymentSchedule `gorm:"foreignKey:DealID;constraint:OnDelete:CASCADE"`
	StageHistories   []StageHistory    `gorm:"foreignKey:DealID;constraint:OnDelete:CASCADE"`
	ActionItems      []ActionItem      `gorm:"foreignKey:DealID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}
