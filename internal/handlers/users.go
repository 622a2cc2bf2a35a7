package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"userd/internal/model"
	"userd/internal/store"
)

// UsersHandler provides the CRUD endpoints over the user store. Write
// operations hold the store lock around the whole load-mutate-save
// sequence; reads do not take it.
type UsersHandler struct {
	store store.Store
}

// NewUsersHandler creates a new UsersHandler backed by st.
func NewUsersHandler(st store.Store) *UsersHandler {
	return &UsersHandler{store: st}
}

// Routes registers the user CRUD routes on the given chi router.
func (h *UsersHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// List returns all users in store order.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	doc, err := h.store.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, doc.Users)
}

// Get returns a single user by id.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	doc, err := h.store.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	for _, u := range doc.Users {
		if u.ID == id {
			writeJSON(w, http.StatusOK, u)
			return
		}
	}
	writeError(w, http.StatusNotFound, "User not found")
}

// Create appends a new user under the next free id.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, fieldErrs := model.DecodeUserIn(r.Body)
	if len(fieldErrs) > 0 {
		writeValidationError(w, fieldErrs)
		return
	}

	h.store.Lock()
	defer h.store.Unlock()

	doc, err := h.store.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if doc.NextID < 1 {
		doc.NextID = 1
	}

	u := model.User{ID: doc.NextID, UserIn: in}
	doc.Users = append(doc.Users, u)
	doc.NextID++

	if err := h.store.Save(doc); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// Update replaces a user in place, preserving its id and position.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	in, fieldErrs := model.DecodeUserIn(r.Body)
	if len(fieldErrs) > 0 {
		writeValidationError(w, fieldErrs)
		return
	}

	h.store.Lock()
	defer h.store.Unlock()

	doc, err := h.store.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	for i := range doc.Users {
		if doc.Users[i].ID == id {
			updated := model.User{ID: id, UserIn: in}
			doc.Users[i] = updated
			if err := h.store.Save(doc); err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			writeJSON(w, http.StatusOK, updated)
			return
		}
	}
	writeError(w, http.StatusNotFound, "User not found")
}

// Delete removes a user by id. The next_id counter is never decremented,
// so deleted ids are never reissued.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	h.store.Lock()
	defer h.store.Unlock()

	doc, err := h.store.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	for i := range doc.Users {
		if doc.Users[i].ID == id {
			doc.Users = append(doc.Users[:i], doc.Users[i+1:]...)
			if err := h.store.Save(doc); err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "User not found")
}

// idParam parses the {id} path parameter. A non-integer id can never
// match a record, so callers treat it as a lookup miss.
func idParam(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, false
	}
	return id, true
}
