package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userd/internal/model"
	"userd/internal/store"
)

func usersRouter(st store.Store) http.Handler {
	r := chi.NewRouter()
	r.Route("/users", NewUsersHandler(st).Routes)
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateAssignsMonotonicIDs(t *testing.T) {
	h := usersRouter(store.NewMemStore())
	body := `{"username":"a","email":"a@x.com","age":30}`

	rec := doJSON(t, h, http.MethodPost, "/users", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var first model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "a", first.Username)

	rec = doJSON(t, h, http.MethodPost, "/users", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var second model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.Equal(t, 2, second.ID)
}

func TestGetAfterCreateReturnsSameFields(t *testing.T) {
	h := usersRouter(store.NewMemStore())
	doJSON(t, h, http.MethodPost, "/users", `{"username":"a","email":"a@x.com","age":30}`)

	rec := doJSON(t, h, http.MethodGet, "/users/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"username":"a","email":"a@x.com","age":30}`, rec.Body.String())
}

func TestGetMissingUser(t *testing.T) {
	h := usersRouter(store.NewMemStore())

	rec := doJSON(t, h, http.MethodGet, "/users/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"User not found"}`, rec.Body.String())
}

func TestGetNonIntegerID(t *testing.T) {
	h := usersRouter(store.NewMemStore())

	rec := doJSON(t, h, http.MethodGet, "/users/abc", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListPreservesInsertionOrder(t *testing.T) {
	h := usersRouter(store.NewMemStore())
	doJSON(t, h, http.MethodPost, "/users", `{"username":"a","email":"a@x.com","age":30}`)
	doJSON(t, h, http.MethodPost, "/users", `{"username":"b","email":"b@x.com","age":40}`)

	rec := doJSON(t, h, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var users []model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 2)
	assert.Equal(t, "a", users[0].Username)
	assert.Equal(t, "b", users[1].Username)
}

func TestListEmptyStoreReturnsArray(t *testing.T) {
	h := usersRouter(store.NewMemStore())

	rec := doJSON(t, h, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateInvalidBody(t *testing.T) {
	h := usersRouter(store.NewMemStore())

	rec := doJSON(t, h, http.MethodPost, "/users", `{"username":"a"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Detail []model.FieldError `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Detail, 2)
}

func TestUpdateReplacesInPlace(t *testing.T) {
	h := usersRouter(store.NewMemStore())
	doJSON(t, h, http.MethodPost, "/users", `{"username":"a","email":"a@x.com","age":30}`)
	doJSON(t, h, http.MethodPost, "/users", `{"username":"b","email":"b@x.com","age":40}`)

	rec := doJSON(t, h, http.MethodPut, "/users/1", `{"username":"z","email":"z@x.com","age":50}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"username":"z","email":"z@x.com","age":50}`, rec.Body.String())

	// Position and id are preserved.
	rec = doJSON(t, h, http.MethodGet, "/users", "")
	var users []model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 2)
	assert.Equal(t, "z", users[0].Username)
	assert.Equal(t, 1, users[0].ID)
}

func TestUpdateMissingUserLeavesStoreUnchanged(t *testing.T) {
	ms := store.NewMemStore()
	h := usersRouter(ms)
	doJSON(t, h, http.MethodPost, "/users", `{"username":"a","email":"a@x.com","age":30}`)

	before, err := ms.Load()
	require.NoError(t, err)

	rec := doJSON(t, h, http.MethodPut, "/users/99", `{"username":"z","email":"z@x.com","age":50}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	after, err := ms.Load()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDeleteThenGet(t *testing.T) {
	h := usersRouter(store.NewMemStore())
	doJSON(t, h, http.MethodPost, "/users", `{"username":"a","email":"a@x.com","age":30}`)

	rec := doJSON(t, h, http.MethodDelete, "/users/1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/users/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeletedIDNeverReused(t *testing.T) {
	h := usersRouter(store.NewMemStore())
	doJSON(t, h, http.MethodPost, "/users", `{"username":"a","email":"a@x.com","age":30}`)
	doJSON(t, h, http.MethodDelete, "/users/1", "")

	rec := doJSON(t, h, http.MethodPost, "/users", `{"username":"b","email":"b@x.com","age":40}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var u model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
	assert.Equal(t, 2, u.ID)
}

func TestDeleteMissingUser(t *testing.T) {
	h := usersRouter(store.NewMemStore())

	rec := doJSON(t, h, http.MethodDelete, "/users/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStoreFaultSurfacesAs500(t *testing.T) {
	ms := store.NewMemStore()
	ms.LoadErr = assert.AnError
	h := usersRouter(ms)

	for _, tc := range []struct {
		method, path, body string
	}{
		{http.MethodGet, "/users", ""},
		{http.MethodGet, "/users/1", ""},
		{http.MethodPost, "/users", `{"username":"a","email":"a@x.com","age":30}`},
		{http.MethodPut, "/users/1", `{"username":"a","email":"a@x.com","age":30}`},
		{http.MethodDelete, "/users/1", ""},
	} {
		rec := doJSON(t, h, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, "%s %s", tc.method, tc.path)
	}
}
