package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"tovarka-main/internal/category"
	"tovarka-main/internal/contextutil"
	"tovarka-main/internal/roles"
	typesCategory "tovarka-main/internal/types/category"
	myErr "tovarka-main/internal/types/errors"
)

const (
	minCategoryNameLength = 5
	maxCategoryNameLength = 30
)

type CategoryHandler struct {
	Logger       *zap.SugaredLogger
	CategoryRepo category.CategoryRepo
}

func NewCategoryHandler(l *zap.SugaredLogger, cr category.CategoryRepo) *CategoryHandler {
	return &CategoryHandler{
		Logger:       l,
		CategoryRepo: cr,
	}
}

func validCategoryName(name string) bool {
	length := utf8.RuneCountInString(name)
	return length >= minCategoryNameLength && length <= maxCategoryNameLength
}

// requireElevated проверяет, что запрос пришел от привилегированной роли
func (h *CategoryHandler) requireElevated(w http.ResponseWriter, r *http.Request) bool {
	role, ok := contextutil.GetRoleFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return false
	}
	if !roles.Elevated(role) {
		myErr.SendErrorTo(w, myErr.ErrNoAccess, http.StatusForbidden, h.Logger)
		return false
	}

	return true
}

// Create handles POST /category
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.requireElevated(w, r) {
		return
	}

	userID, _ := contextutil.GetUserIDFromContext(r.Context())

	var input typesCategory.CreateCategory
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	if !validCategoryName(input.Name) {
		myErr.SendErrorTo(w, myErr.ErrCategoryNameIsInvalid, http.StatusBadRequest, h.Logger)
		return
	}

	c, err := h.CategoryRepo.Create(r.Context(), input, userID)
	if err != nil {
		if errors.Is(err, myErr.ErrAlreadyExists) {
			myErr.SendErrorTo(w, err, http.StatusUnprocessableEntity, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(c); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("category created: %d", c.ID)
}

// GetAll handles GET /categories
func (h *CategoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.CategoryRepo.GetAll(r.Context())
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(categories); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("fetched %d categories", len(categories))
}

// GetByID handles GET /category/{id}
func (h *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	c, err := h.CategoryRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFoundCategory) {
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(c); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("fetched category by id: %d", id)
}

// Update handles PUT /category/{id}
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !h.requireElevated(w, r) {
		return
	}

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	var input typesCategory.UpdateCategory
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	if input.Name != "" && !validCategoryName(input.Name) {
		myErr.SendErrorTo(w, myErr.ErrCategoryNameIsInvalid, http.StatusBadRequest, h.Logger)
		return
	}

	c, err := h.CategoryRepo.Update(r.Context(), id, input)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFoundCategory) {
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(c); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("category updated: %d", id)
}

// Delete handles DELETE /category/{id}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.requireElevated(w, r) {
		return
	}

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	c, err := h.CategoryRepo.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFoundCategory) {
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(c); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("category deleted: %d", id)
}
