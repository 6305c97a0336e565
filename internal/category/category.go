package category

import (
	"context"
	"time"

	types "tovarka-main/internal/types/category"
)

// Category - категория товаров с необязательными подкатегориями
type Category struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Children  []string  `json:"children"`
	UserID    string    `json:"user_id"` // создатель категории
	CreatedAt time.Time `json:"created_at"`
}

//go:generate mockgen -source=category.go -destination=../mocks/mock_category_repo.go -package=mocks
type CategoryRepo interface {
	// Create - создает новую категорию от пользователя userID
	Create(ctx context.Context, form types.CreateCategory, userID string) (*Category, error)

	// GetAll - возвращает все категории
	GetAll(ctx context.Context) ([]Category, error)

	// GetByID - получает категорию по ID
	GetByID(ctx context.Context, categoryID int) (*Category, error)

	// Update - обновляет существующую категорию
	Update(ctx context.Context, categoryID int, form types.UpdateCategory) (*Category, error)

	// Delete - удаляет категорию, возвращает удаленную
	Delete(ctx context.Context, categoryID int) (*Category, error)
}
