package rating

import (
	"context"
	"time"

	"tovarka-main/internal/product"
	types "tovarka-main/internal/types/rating"
)

// Rating - отзыв пользователя на товар
type Rating struct {
	ID        string    `json:"id"` // uuid
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RatingWithRefs - отзыв вместе с краткой информацией о товаре и авторе,
// используется в административной выдаче всех отзывов
type RatingWithRefs struct {
	Rating
	ProductName string `json:"product_name"`
	UserName    string `json:"user_name"`
	UserEmail   string `json:"user_email"`
}

// RatingRepo поддерживает инвариант: product.rating всегда равен
// среднему арифметическому по всем текущим отзывам товара.
// Каждая мутация и пересчет агрегата выполняются в одной транзакции
// под блокировкой строки товара, поэтому конкурентные мутации по
// одному товару сериализуются и не теряют обновлений.
//
//go:generate mockgen -source=rating.go -destination=../mocks/mock_rating_repo.go -package=mocks
type RatingRepo interface {
	// Create - создает отзыв от пользователя userID и пересчитывает рейтинг товара.
	// Возвращает обновленный товар и созданный отзыв.
	Create(ctx context.Context, form types.CreateRating, userID string) (*product.Product, *Rating, error)

	// GetAll - возвращает все отзывы с информацией о товаре и авторе
	GetAll(ctx context.Context) ([]RatingWithRefs, error)

	// GetByID - получает конкретный отзыв по ID
	GetByID(ctx context.Context, ratingID string) (*Rating, error)

	// Update - обновляет отзыв и пересчитывает рейтинг итогового товара отзыва.
	// Если отзыв переносится на другой товар, рейтинг старого товара тоже пересчитывается.
	Update(ctx context.Context, ratingID string, form types.UpdateRating) (*product.Product, *Rating, error)

	// Delete - удаляет отзыв и пересчитывает рейтинг товара.
	// Если отзыв был последним, рейтинг товара сбрасывается в NULL.
	// Возвращает удаленный отзыв.
	Delete(ctx context.Context, ratingID string) (*Rating, error)
}
