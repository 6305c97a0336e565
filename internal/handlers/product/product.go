package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"tovarka-main/internal/contextutil"
	elasticService "tovarka-main/internal/elastic_search"
	"tovarka-main/internal/kafka"
	"tovarka-main/internal/product"
	myErr "tovarka-main/internal/types/errors"
	typesProduct "tovarka-main/internal/types/product"
)

type ProductHandler struct {
	Logger      *zap.SugaredLogger
	ProductRepo product.ProductRepo
	Search      *elasticService.ElasticService
	Producer    kafka.EventProducer
}

func NewProductHandler(
	l *zap.SugaredLogger,
	pr product.ProductRepo,
	search *elasticService.ElasticService,
	producer kafka.EventProducer,
) *ProductHandler {
	return &ProductHandler{
		Logger:      l,
		ProductRepo: pr,
		Search:      search,
		Producer:    producer,
	}
}

// Create handles POST /product
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input typesProduct.CreateProduct
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	if userID, ok := contextutil.GetUserIDFromContext(r.Context()); ok {
		input.UserSellerID = userID
	}

	p, err := h.ProductRepo.Create(input)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("product created: %s", p.ID)
}

// GetByID handles GET /product/{id}
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		myErr.SendErrorTo(w, errors.New("missing product id"), http.StatusBadRequest, h.Logger)
		return
	}

	p, err := h.ProductRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	// Просмотр карточки товара - событие для аналитики
	h.sendEvent(r, kafka.EventTypeView, []int{p.Category})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("fetched product by id: %s", id)
}

// GetTopN handles GET /products/top/{limit}
func (h *ProductHandler) GetTopN(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	limitStr := vars["limit"]
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		myErr.SendErrorTo(w, errors.New("invalid limit"), http.StatusBadRequest, h.Logger)
		return
	}

	products, err := h.ProductRepo.GetTopN(limit)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(products); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("fetched top %d products", limit)
}

// SearchProducts handles GET /products/search?q={query}
// Сначала полнотекстовый поиск через ElasticSearch, при его недоступности
// откатываемся на LIKE-поиск в PostgreSQL
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		myErr.SendErrorTo(w, errors.New("missing query parameter"), http.StatusBadRequest, h.Logger)
		return
	}

	products, err := h.searchProducts(r, q)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	categories := make([]int, 0, len(products))
	catSet := make(map[int]struct{})
	for _, p := range products {
		if _, exists := catSet[p.Category]; !exists {
			catSet[p.Category] = struct{}{}
			categories = append(categories, p.Category)
		}
	}
	h.sendEvent(r, kafka.EventTypeSearch, categories)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(products); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("searched products with query: %s", q)
}

func (h *ProductHandler) searchProducts(r *http.Request, q string) ([]product.Product, error) {
	if h.Search == nil {
		return h.ProductRepo.Search(q)
	}

	docs, err := h.Search.SearchByName(r.Context(), q)
	if err != nil {
		h.Logger.Warnf("elasticsearch unavailable, falling back to db search: %v", err)
		return h.ProductRepo.Search(q)
	}
	if len(docs) == 0 {
		return []product.Product{}, nil
	}

	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}

	return h.ProductRepo.GetByIDs(ids)
}

func (h *ProductHandler) sendEvent(r *http.Request, eventType kafka.EventType, categories []int) {
	if h.Producer == nil || len(categories) == 0 {
		return
	}

	userID, ok := contextutil.GetUserIDFromContext(r.Context())
	if !ok {
		return
	}

	event := kafka.Event{
		UserID:     userID,
		Type:       eventType,
		Categories: categories,
		Timestamp:  time.Now(),
	}
	if err := h.Producer.SendEvent(r.Context(), event); err != nil {
		h.Logger.Warnf("failed to send %s event: %v", eventType, err)
	}
}
