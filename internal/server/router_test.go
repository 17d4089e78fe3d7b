package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KromaEnergia/api-crm/internal/auth"
	"github.com/KromaEnergia/api-crm/internal/config"
	"github.com/KromaEnergia/api-crm/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	logger, _ := testutil.NewLogger()
	cfg := config.Config{APIPrefix: "/api", CORSOrigins: []string{"http://localhost:3000"}, PhoneRegion: "US"}
	return NewRouter(Deps{
		DB:     testutil.NewDB(t),
		Config: cfg,
		Logger: logger,
		Issuer: auth.NewTokenIssuer("test-secret", 24*time.Hour),
	})
}

func call(t *testing.T, h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestEndToEndPipeline(t *testing.T) {
	h := newTestServer(t)

	rec := call(t, h, http.MethodPost, "/api/users", `{"name":"Rita","email":"rita@example.com","role":"SalesRep","password":"pw"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	repID := jsonBody(t, rec)["user"].(map[string]any)["id"].(float64)

	rec = call(t, h, http.MethodPost, "/api/auth/login", `{"email":"rita@example.com","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token := jsonBody(t, rec)["token"].(string)

	rec = call(t, h, http.MethodPost, "/api/clients", `{"company":"Acme","contact_name":"Jane","email":"jane@acme.com"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	clientID := jsonBody(t, rec)["client_id"].(float64)

	body := fmt.Sprintf(`{"client_id":%d,"sales_rep_id":%d,"stage":"Lead","estimated_value":"1000.00","probability":0.2,"expected_close":"2024-06-01"}`, int(clientID), int(repID))
	rec = call(t, h, http.MethodPost, "/api/deals", body, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	dealID := int(jsonBody(t, rec)["deal"].(map[string]any)["id"].(float64))

	rec = call(t, h, http.MethodPut, fmt.Sprintf("/api/deals/%d", dealID), `{"stage":"Negotiation"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = call(t, h, http.MethodGet, fmt.Sprintf("/api/deals/%d/stage_history", dealID), "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	history := jsonBody(t, rec)["stage_history"].([]any)
	require.Len(t, history, 2)
	assert.Equal(t, "Lead", history[0].(map[string]any)["stage"])
	assert.NotNil(t, history[0].(map[string]any)["exited_at"])
	assert.Equal(t, "Negotiation", history[1].(map[string]any)["stage"])
	assert.Nil(t, history[1].(map[string]any)["exited_at"])

	rec = call(t, h, http.MethodGet, "/api/deals", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, jsonBody(t, rec)["deals"], 1)

	rec = call(t, h, http.MethodGet, "/api/deals", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Missing or invalid token", jsonBody(t, rec)["message"])

	rec = call(t, h, http.MethodDelete, fmt.Sprintf("/api/clients/%d", int(clientID)), "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = call(t, h, http.MethodGet, fmt.Sprintf("/api/deals/%d", dealID), "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJSONNotFoundAndMethodNotAllowed(t *testing.T) {
	h := newTestServer(t)

	rec := call(t, h, http.MethodGet, "/api/nothing", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Resource not found"}`, rec.Body.String())

	rec = call(t, h, http.MethodGet, "/api/clients/abc", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(t, h, http.MethodPatch, "/api/clients", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"message":"Method not allowed"}`, rec.Body.String())
}

func TestHealthzAndRequestID(t *testing.T) {
	h := newTestServer(t)

	rec := call(t, h, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/deals", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Less(t, rec.Code, 300)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecovery(t *testing.T) {
	logger, hook := testutil.NewLogger()
	panicky := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { panic("boom") })

	rec := httptest.NewRecorder()
	recovery(logger)(panicky).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, rec.Body.String())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "boom", hook.LastEntry().Data["panic"])
}
