package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/KromaEnergia/api-crm/internal/apperrors"
	"github.com/KromaEnergia/api-crm/internal/config"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// WriteJSON serializa v com o status informado.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage responde {"message": msg}.
func WriteMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"message": msg})
}

// WriteError converte o erro no corpo padrão de erro.
// Falhas de persistência levam a causa em "error".
func WriteError(w http.ResponseWriter, err error) {
	appErr := apperrors.As(err)
	body := map[string]any{"message": appErr.Message}
	if len(appErr.Fields) > 0 {
		body["errors"] = appErr.Fields
	}
	if appErr.Kind == apperrors.KindPersistence && appErr.Err != nil {
		body["error"] = appErr.Err.Error()
	}
	WriteJSON(w, appErr.Status(), body)
}

// Fail registra erros 5xx e responde.
func Fail(w http.ResponseWriter, logger logrus.FieldLogger, module, funcName string, err error) {
	if apperrors.Status(err) >= http.StatusInternalServerError && logger != nil {
		config.LogError(logger, module, funcName, "request failed", nil, err)
	}
	WriteError(w, err)
}

// DecodeJSON lê o corpo da requisição; corpo vazio conta como campos ausentes.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return apperrors.Validation("Missing required fields")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.Validation("Missing required fields")
		}
		return &apperrors.Error{Kind: apperrors.KindValidation, Message: "Invalid JSON payload: " + err.Error(), Err: err}
	}
	return nil
}

// PathID lê um id numérico das variáveis da rota.
func PathID(r *http.Request, name string) (uint, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.Validation("Invalid " + name)
	}
	return uint(id), nil
}
