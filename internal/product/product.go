package product

import (
	"time"

	types "tovarka-main/internal/types/product"
)

// Product - карточка товара.
// Rating - денормализованное среднее по отзывам, nil пока отзывов нет.
// Пишется только репозиторием отзывов, напрямую не изменяется.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	UserSellerID string    `json:"user_seller_id"`
	Price        int64     `json:"price"`
	Category     int       `json:"category"`
	Discount     int       `json:"discount"`
	IsActive     bool      `json:"is_active"`
	Rating       *float64  `json:"rating"`
	RatingCount  int       `json:"rating_count"`
	CreatedAt    time.Time `json:"created_at"`
}

//go:generate mockgen -source=product.go -destination=../mocks/mock_product_repo.go -package=mocks
type ProductRepo interface {
	Create(p types.CreateProduct) (*Product, error)
	GetTopN(limit int) ([]Product, error)
	Search(query string) ([]Product, error)
	GetByID(id string) (*Product, error)
	GetByIDs(ids []string) ([]Product, error)
	GetInfoForShoppingCart(ids []string) ([]types.InfoForSC, error)
}
