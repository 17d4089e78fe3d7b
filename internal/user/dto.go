package user

import (
	"time"

	"github.com/KromaEnergia/api-crm/internal/models"
)

// signupRequest é usado em POST /users
type signupRequest struct {
	Name     string      `json:"name" validate:"required,max=255"`
	Email    string      `json:"email" validate:"required,email,max=255"`
	Role     models.Role `json:"role" validate:"required"`
	Password string      `json:"password" validate:"required"`
}

// updateUserRequest é usado em PUT /users/{id}
type updateUserRequest struct {
	Name     models.Optional[string]      `json:"name"`
	Email    models.Optional[string]      `json:"email"`
	Role     models.Optional[models.Role] `json:"role"`
	Password models.Optional[string]      `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserDTO nunca expõe o hash da senha.
type UserDTO struct {
	ID        uint        `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	User      UserDTO   `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

func toDTO(u models.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toDTOs(list []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(list))
	for _, u := range list {
		out = append(out, toDTO(u))
	}
	return out
}
