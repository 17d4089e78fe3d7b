package models

// AllModels lista as entidades na ordem de criação das tabelas.
func AllModels() []any {
	return []any{
		&Client{},
		&User{},
		&Deal{},
		&PaymentSchedule{},
		&StageHistory{},
		&ActionItem{},
	}
}
