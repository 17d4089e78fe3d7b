package client

import (
	"time"

	"github.com/KromaEnergia/api-crm/internal/models"
)

// createClientRequest é usado em POST /clients
type createClientRequest struct {
	Company         string  `json:"company" validate:"required"`
	ContactName     string  `json:"contact_name" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	Phone           *string `json:"phone"`
	ExternalBoardID *string `json:"external_board_id"`
}

// updateClientRequest é usado em PUT /clients/{id}; só altera o que vier no corpo
type updateClientRequest struct {
	Company         models.Optional[string] `json:"company"`
	ContactName     models.Optional[string] `json:"contact_name"`
	Email           models.Optional[string] `json:"email"`
	Phone           models.Optional[string] `json:"phone"`
	ExternalBoardID models.Optional[string] `json:"external_board_id"`
}

type ClientDTO struct {
	ID              uint      `json:"id"`
	Company         string    `json:"company"`
	ContactName     string    `json:"contact_name"`
	Email           string    `json:"email"`
	Phone           *string   `json:"phone"`
	ExternalBoardID *string   `json:"external_board_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toDTO(c models.Client) ClientDTO {
	return ClientDTO{
		ID:              c.ID,
		Company:         c.Company,
		ContactName:     c.ContactName,
		Email:           c.Email,
		Phone:           c.Phone,
		ExternalBoardID: c.ExternalBoardID,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func toDTOs(list []models.Client) []ClientDTO {
	out := make([]ClientDTO, 0, len(list))
	for _, c := range list {
		out = append(out, toDTO(c))
	}
	return out
}
