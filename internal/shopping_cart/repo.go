package shopping_cart

import (
	"database/sql"
	"errors"

	"go.uber.org/zap"

	myErr "tovarka-main/internal/types/errors"
)

type ShoppingCartRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewShoppingCartRepository(db *sql.DB, logger *zap.SugaredLogger) *ShoppingCartRepository {
	return &ShoppingCartRepository{
		DB:     db,
		Logger: logger,
	}
}

// AddProduct добавляет пользователю в корзину товар
func (scr *ShoppingCartRepository) AddProduct(userID string, productID string) error {
	query := `
	INSERT INTO shopping_cart(user_id, product_id)
	VALUES ($1, $2) ON CONFLICT (user_id, product_id)
	DO NOTHING
`
	_, err := scr.DB.Exec(query, userID, productID)
	if err != nil {
		scr.Logger.Errorf("Ошибка при добавлении товара в корзину: %v", err)
		return myErr.ErrDBInternal
	}

	return nil
}

// DeleteProduct удаляет из корзины покупки
func (scr *ShoppingCartRepository) DeleteProduct(userID string, productID string) error {
	query := `
	DELETE FROM shopping_cart
	WHERE user_id = $1 AND product_id = $2
`
	_, err := scr.DB.Exec(query, userID, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return myErr.ErrNotFound
		}

		scr.Logger.Errorf("Ошибка при удалении из корзины: %v", err)
		return myErr.ErrDBInternal
	}

	return nil
}

// GetByUserID получает корзину пользователя (список id товаров)
func (scr *ShoppingCartRepository) GetByUserID(userID string) ([]string, error) {
	query := `
	SELECT product_id FROM shopping_cart
	WHERE user_id = $1
`
	rows, err := scr.DB.Query(query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}

		scr.Logger.Errorf("Ошибка при получении корзины клиента %v: %v", userID, err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var productIDs []string
	for rows.Next() {
		var productID string
		if err := rows.Scan(&productID); err != nil {
			return nil, myErr.ErrDBInternal
		}

		productIDs = append(productIDs, productID)
	}

	return productIDs, nil
}
