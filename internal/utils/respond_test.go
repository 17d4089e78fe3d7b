package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/KromaEnergia/api-crm/internal/apperrors"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteError_Persistence(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, apperrors.Persistence("Failed to create deal", errors.New("disk full")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Failed to create deal", body["message"])
	assert.Equal(t, "disk full", body["error"])
}

func TestWriteError_ValidationFields(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, apperrors.ValidationFields("Missing required fields", map[string]string{"email": "required"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, map[string]any{"email": "required"}, body["errors"])
	assert.NotContains(t, body, "error")
}

func TestWriteError_UnknownError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeBody(t, rec)["message"])
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	err := DecodeJSON(req, &v)
	assert.Equal(t, http.StatusBadRequest, apperrors.Status(err))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{bad"))
	err = DecodeJSON(req, &v)
	assert.Equal(t, http.StatusBadRequest, apperrors.Status(err))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Acme"}`))
	require.NoError(t, DecodeJSON(req, &v))
	assert.Equal(t, "Acme", v.Name)
}

func TestPathID(t *testing.T) {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/deals/7", nil), map[string]string{"id": "7"})
	id, err := PathID(req, "id")
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)

	req = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/deals/0", nil), map[string]string{"id": "0"})
	_, err = PathID(req, "id")
	assert.Equal(t, http.StatusBadRequest, apperrors.Status(err))
}
