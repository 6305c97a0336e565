package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"tovarka-main/internal/contextutil"
	"tovarka-main/internal/kafka"
	"tovarka-main/internal/rating"
	"tovarka-main/internal/roles"
	myErr "tovarka-main/internal/types/errors"
	typesRating "tovarka-main/internal/types/rating"
)

const (
	minRating     = 1
	maxRating     = 5
	minTextLength = 5
	maxTextLength = 1000
)

type RatingHandler struct {
	Logger     *zap.SugaredLogger
	RatingRepo rating.RatingRepo
	Producer   kafka.EventProducer
}

func NewRatingHandler(l *zap.SugaredLogger, rr rating.RatingRepo, producer kafka.EventProducer) *RatingHandler {
	return &RatingHandler{
		Logger:     l,
		RatingRepo: rr,
		Producer:   producer,
	}
}

// validateRating проверяет оценку и текст отзыва общими для создания
// и обновления правилами
func validateRating(ratingValue int, text string) error {
	if ratingValue < minRating || ratingValue > maxRating {
		return myErr.ErrRatingIsInvalid
	}
	if utf8.RuneCountInString(text) < minTextLength {
		return myErr.ErrRatingTextIsTooShort
	}
	if utf8.RuneCountInString(text) > maxTextLength {
		return myErr.ErrRatingTextIsTooLong
	}

	return nil
}

// Create handles POST /rating
func (h *RatingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.GetUserIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	var input typesRating.CreateRating
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	if input.ProductID == "" {
		myErr.SendErrorTo(w, errors.New("missing product id"), http.StatusBadRequest, h.Logger)
		return
	}
	if err := validateRating(input.Rating, input.Text); err != nil {
		myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}

	updatedProduct, created, err := h.RatingRepo.Create(r.Context(), input, userID)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFoundProduct) {
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.sendEvent(r, userID, updatedProduct.Category)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	resp := map[string]interface{}{
		"product": updatedProduct,
		"rating":  created,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("rating created: %s for product %s", created.ID, created.ProductID)
}

// GetAll handles GET /ratings, доступно только привилегированным ролям
func (h *RatingHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	role, ok := contextutil.GetRoleFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}
	if !roles.Elevated(role) {
		myErr.SendErrorTo(w, myErr.ErrNoAccess, http.StatusForbidden, h.Logger)
		return
	}

	ratings, err := h.RatingRepo.GetAll(r.Context())
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ratings); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("fetched %d ratings", len(ratings))
}

// Update handles PUT /rating/{id}, доступно только привилегированным ролям
func (h *RatingHandler) Update(w http.ResponseWriter, r *http.Request) {
	role, ok := contextutil.GetRoleFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}
	if !roles.Elevated(role) {
		myErr.SendErrorTo(w, myErr.ErrNoAccess, http.StatusForbidden, h.Logger)
		return
	}

	vars := mux.Vars(r)
	ratingID := vars["id"]
	if ratingID == "" {
		myErr.SendErrorTo(w, myErr.ErrMissingRatingID, http.StatusBadRequest, h.Logger)
		return
	}

	var input typesRating.UpdateRating
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	if input.Rating < minRating || input.Rating > maxRating {
		myErr.SendErrorTo(w, myErr.ErrRatingIsInvalid, http.StatusBadRequest, h.Logger)
		return
	}
	if input.Text != "" {
		if utf8.RuneCountInString(input.Text) < minTextLength {
			myErr.SendErrorTo(w, myErr.ErrRatingTextIsTooShort, http.StatusBadRequest, h.Logger)
			return
		}
		if utf8.RuneCountInString(input.Text) > maxTextLength {
			myErr.SendErrorTo(w, myErr.ErrRatingTextIsTooLong, http.StatusBadRequest, h.Logger)
			return
		}
	}

	updatedProduct, updated, err := h.RatingRepo.Update(r.Context(), ratingID, input)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFoundRating) || errors.Is(err, myErr.ErrNotFoundProduct) {
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	resp := map[string]interface{}{
		"product": updatedProduct,
		"rating":  updated,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("rating updated: %s", ratingID)
}

// Delete handles DELETE /rating/{id}
// Привилегированные роли могут удалить любой отзыв, обычный
// пользователь - только свой
func (h *RatingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.GetUserIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	vars := mux.Vars(r)
	ratingID := vars["id"]
	if ratingID == "" {
		myErr.SendErrorTo(w, myErr.ErrMissingRatingID, http.StatusBadRequest, h.Logger)
		return
	}

	role, _ := contextutil.GetRoleFromContext(r.Context())
	if !roles.Elevated(role) {
		current, err := h.RatingRepo.GetByID(r.Context(), ratingID)
		if err != nil {
			if errors.Is(err, myErr.ErrNotFoundRating) {
				myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
				return
			}
			myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
			return
		}
		if current.UserID != userID {
			myErr.SendErrorTo(w, myErr.ErrNoAccess, http.StatusForbidden, h.Logger)
			return
		}
	}

	deleted, err := h.RatingRepo.Delete(r.Context(), ratingID)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFoundRating) {
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(deleted); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("rating deleted: %s", ratingID)
}

func (h *RatingHandler) sendEvent(r *http.Request, userID string, category int) {
	if h.Producer == nil {
		return
	}

	event := kafka.Event{
		UserID:     userID,
		Type:       kafka.EventTypeRating,
		Categories: []int{category},
		Timestamp:  time.Now(),
	}
	if err := h.Producer.SendEvent(r.Context(), event); err != nil {
		h.Logger.Warnf("failed to send rating event: %v", err)
	}
}
