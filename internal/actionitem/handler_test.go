package actionitem

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KromaEnergia/api-crm/internal/models"
	"github.com/KromaEnergia/api-crm/internal/testutil"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db     *gorm.DB
	router *mux.Router
	deal   models.Deal
	owner  models.User
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := testutil.NewDB(t)
	logger, _ := testutil.NewLogger()
	h := NewHandler(db, logger)

	r := mux.NewRouter()
	r.HandleFunc("/deals/{id:[0-9]+}/action_items", h.ListByDeal).Methods(http.MethodGet)
	r.HandleFunc("/deals/{id:[0-9]+}/action_items", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/action_items/{id:[0-9]+}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/action_items/{id:[0-9]+}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/action_items/{id:[0-9]+}", h.Delete).Methods(http.MethodDelete)

	c := testutil.CreateClient(t, db, "acme@example.com")
	u := testutil.CreateUser(t, db, "rep@example.com", models.RoleSalesRep)
	return fixture{db: db, router: r, deal: testutil.CreateDeal(t, db, c.ID, u.ID, "Lead"), owner: u}
}

func (f fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Message    string        `json:"message"`
	ActionItem ActionItemDTO `json:"action_item"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func TestCreateAndList(t *testing.T) {
	f := setup(t)
	path := fmt.Sprintf("/deals/%d/action_items", f.deal.ID)

	for _, due := range []string{"2024-06-10", "2024-06-01"} {
		body := fmt.Sprintf(`{"description":"Call %s","owner_id":%d,"due_date":"%s"}`, due, f.owner.ID, due)
		rec := f.do(t, http.MethodPost, path, body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		got := decode(t, rec)
		assert.Equal(t, "Action item created successfully", got.Message)
		require.NotNil(t, got.ActionItem.OwnerName)
		assert.Equal(t, f.owner.Name, *got.ActionItem.OwnerName)
		assert.Nil(t, got.ActionItem.CompletedAt)
	}

	rec := f.do(t, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		ActionItems []ActionItemDTO `json:"action_items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.ActionItems, 2)
	assert.Equal(t, "2024-06-01", body.ActionItems[0].DueDate.String())
	assert.Equal(t, "2024-06-10", body.ActionItems[1].DueDate.String())
}

func TestCreateErrors(t *testing.T) {
	f := setup(t)

	rec := f.do(t, http.MethodPost, fmt.Sprintf("/deals/%d/action_items", f.deal.ID), `{"description":"Call","owner_id":999,"due_date":"2024-06-01"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Owner (User) not found", decode(t, rec).Message)

	rec = f.do(t, http.MethodPost, fmt.Sprintf("/deals/%d/action_items", f.deal.ID), `{"description":"Call"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required fields", decode(t, rec).Message)

	rec = f.do(t, http.MethodPost, "/deals/999/action_items", fmt.Sprintf(`{"description":"Call","owner_id":%d,"due_date":"2024-06-01"}`, f.owner.ID))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Deal not found", decode(t, rec).Message)

	rec = f.do(t, http.MethodGet, "/deals/999/action_items", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateCompletedAt(t *testing.T) {
	f := setup(t)
	item := models.ActionItem{DealID: f.deal.ID, Description: "Send proposal", OwnerID: f.owner.ID, DueDate: models.NewDate(time.Now())}
	require.NoError(t, f.db.Create(&item).Error)
	path := fmt.Sprintf("/action_items/%d", item.ID)

	rec := f.do(t, http.MethodPut, path, `{"completed_at":"2024-06-02T15:04:05Z"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode(t, rec).ActionItem
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(time.Date(2024, 6, 2, 15, 4, 5, 0, time.UTC)))
	assert.Equal(t, "Send proposal", got.Description)

	rec = f.do(t, http.MethodPut, path, `{"completed_at":null,"description":"Resend proposal"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got = decode(t, rec).ActionItem
	assert.Nil(t, got.CompletedAt)
	assert.Equal(t, "Resend proposal", got.Description)

	rec = f.do(t, http.MethodPut, path, `{"owner_id":999}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Owner (User) not found", decode(t, rec).Message)

	other := testutil.CreateUser(t, f.db, "other@example.com", models.RoleAdmin)
	rec = f.do(t, http.MethodPut, path, fmt.Sprintf(`{"owner_id":%d}`, other.ID))
	require.Equal(t, http.StatusOK, rec.Code)
	got = decode(t, rec).ActionItem
	assert.Equal(t, other.ID, got.OwnerID)
	require.NotNil(t, got.OwnerName)
	assert.Equal(t, other.Name, *got.OwnerName)

	rec = f.do(t, http.MethodPut, "/action_items/999", `{"description":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Action item not found", decode(t, rec).Message)
}

func TestDeleteActionItem(t *testing.T) {
	f := setup(t)
	item := models.ActionItem{DealID: f.deal.ID, Description: "Call", OwnerID: f.owner.ID, DueDate: models.NewDate(time.Now())}
	require.NoError(t, f.db.Create(&item).Error)
	path := fmt.Sprintf("/action_items/%d", item.ID)

	rec := f.do(t, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Action item deleted successfully", decode(t, rec).Message)

	rec = f.do(t, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
