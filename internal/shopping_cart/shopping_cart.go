package shopping_cart

// ShoppingCart структура корзины пользователей
type ShoppingCart struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
}

// ShoppingCartRepo интерфейс для работы репозитория корзины покупок
//
//go:generate mockgen -source=shopping_cart.go -destination=../mocks/mock_shopping_cart_repo.go -package=mocks
type ShoppingCartRepo interface {
	// AddProduct добавляет пользователю в корзину товар
	AddProduct(userID string, productID string) error
	// DeleteProduct удаляет из корзины покупки
	DeleteProduct(userID string, productID string) error
	// GetByUserID получает корзину пользователя (список id товаров)
	GetByUserID(userID string) ([]string, error)
}
