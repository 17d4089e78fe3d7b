package auth

import "github.com/KromaEnergia/api-crm/internal/models"

// CanViewAllDeals: Owner e Admin enxergam o pipeline inteiro.
func CanViewAllDeals(role models.Role) bool {
	return role == models.RoleOwner || role == models.RoleAdmin
}

// DealScope devolve o filtro de vendedor para listagens.
// nil significa sem filtro.
func DealScope(p Principal) *uint {
	if CanViewAllDeals(p.Role) {
		return nil
	}
	id := p.UserID
	return &id
}
