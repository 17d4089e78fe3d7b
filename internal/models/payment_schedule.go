// internal/models/payment_schedule.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus é o estado de uma parcela.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s == PaymentPaid
}

// PaymentSchedule é uma parcela (marco de pagamento) de um deal.
type PaymentSchedule struct {
	ID            uint            `gorm:"primaryKey"`
	DealID        uint            `gorm:"not null;index"`
	MilestoneName string          `gorm:"size:255;not null"`
	AmountDue     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	DueDate       Date            `gorm:"not null"`
	Status        PaymentStatus   `gorm:"size:20;not null;default:'pending';index"`
	PaidOn        *Date
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ApplyPaidOnRule mantém paid_on coerente com o status:
// pago sem data assume today; pendente sempre fica sem data.
func (p *PaymentSchedule) ApplyPaidOnRule(today Date) {
	switch p.Status {
	case PaymentPaid:
		if p.PaidOn == nil {
			p.PaidOn = DatePtr(today)
		}
	case PaymentPending:
		p.PaidOn = nil
	}
}
