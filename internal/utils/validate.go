package utils

import (
	"errors"
	"reflect"
	"strings"

	"github.com/KromaEnergia/api-crm/internal/apperrors"
	"github.com/KromaEnergia/api-crm/internal/models"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// erros reportados com o nome do campo no JSON
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateStruct aplica as tags `validate` do DTO.
// Campo obrigatório ausente vira "Missing required fields"; demais regras, "Invalid fields".
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return apperrors.Validation(err.Error())
	}
	fields := make(map[string]string, len(ve))
	msg := "Invalid fields"
	for _, fe := range ve {
		fields[fe.Field()] = fe.Tag()
		if fe.Tag() == "required" {
			msg = "Missing required fields"
		}
	}
	return apperrors.ValidationFields(msg, fields)
}

// ValidateVar valida um valor isolado, usado nos updates parciais.
func ValidateVar(field string, value any, tag string) error {
	if err := validate.Var(value, tag); err != nil {
		return apperrors.ValidationFields("Invalid fields", map[string]string{field: tag})
	}
	return nil
}

// RequiredText valida um campo de texto obrigatório vindo num update parcial:
// null ou vazio é rejeitado.
func RequiredText(field string, o models.Optional[string]) (string, error) {
	v := strings.TrimSpace(o.Value)
	if o.Null || v == "" {
		return "", apperrors.ValidationFields("Invalid fields", map[string]string{field: "required"})
	}
	return v, nil
}

// BlankToNil normaliza texto opcional: vazio vira nil.
func BlankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
