package deal

import (
	"time"

	"github.com/KromaEnergia/api-crm/internal/models"
	"github.com/shopspring/decimal"
)

// createDealRequest é usado em POST /deals.
// Ponteiros distinguem campo ausente de valor zero (probability 0 é válido).
type createDealRequest struct {
	ClientID       *uint            `json:"client_id" validate:"required"`
	SalesRepID     *uint            `json:"sales_rep_id" validate:"required"`
	Stage          string           `json:"stage" validate:"required,max=100"`
	EstimatedValue *decimal.Decimal `json:"estimated_value" validate:"required"`
	Probability    *float64         `json:"probability" validate:"required,gte=0,lte=1"`
	ExpectedClose  *models.Date     `json:"expected_close" validate:"required"`
	WonOn          *models.Date     `json:"won_on"`
	LostOn         *models.Date     `json:"lost_on"`
}

// updateDealRequest é usado em PUT /deals/{id}
type updateDealRequest struct {
	ClientID       models.Optional[uint]            `json:"client_id"`
	SalesRepID     models.Optional[uint]            `json:"sales_rep_id"`
	Stage          models.Optional[string]          `json:"stage"`
	EstimatedValue models.Optional[decimal.Decimal] `json:"estimated_value"`
	Probability    models.Optional[float64]         `json:"probability"`
	ExpectedClose  models.Optional[models.Date]     `json:"expected_close"`
	WonOn          models.Optional[models.Date]     `json:"won_on"`
	LostOn         models.Optional[models.Date]     `json:"lost_on"`
}

type DealDTO struct {
	ID             uint         `json:"id"`
	ClientID       uint         `json:"client_id"`
	ClientCompany  *string      `json:"client_company"`
	SalesRepID     uint         `json:"sales_rep_id"`
	SalesRepName   *string      `json:"sales_rep_name"`
	Stage          string       `json:"stage"`
	EstimatedValue string       `json:"estimated_value"`
	Probability    float64      `json:"probability"`
	ExpectedClose  *models.Date `json:"expected_close"`
	WonOn          *models.Date `json:"won_on"`
	LostOn         *models.Date `json:"lost_on"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

func toDTO(d models.Deal) DealDTO {
	dto := DealDTO{
		ID:             d.ID,
		ClientID:       d.ClientID,
		SalesRepID:     d.SalesRepID,
		Stage:          d.Stage,
		EstimatedValue: d.EstimatedValue.StringFixed(2),
		Probability:    d.Probability,
		ExpectedClose:  d.ExpectedClose,
		WonOn:          d.WonOn,
		LostOn:         d.LostOn,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
	if d.Client != nil {
		dto.ClientCompany = &d.Client.Company
	}
	if d.SalesRep != nil {
		dto.SalesRepName = &d.SalesRep.Name
	}
	return dto
}

func toDTOs(list []models.Deal) []DealDTO {
	out := make([]DealDTO, 0, len(list))
	for _, d := range list {
		out = append(out, toDTO(d))
	}
	return out
}
