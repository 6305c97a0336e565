package product

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"
	"go.uber.org/zap"

	myErr "tovarka-main/internal/types/errors"
	types "tovarka-main/internal/types/product"
)

const productColumns = `id, name, description, user_seller_id, price, category, discount, is_active, rating, rating_count, created_at`

type ProductDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewProductDBRepository(db *sql.DB, l *zap.SugaredLogger) *ProductDBRepository {
	return &ProductDBRepository{
		DB:     db,
		Logger: l,
	}
}

// scanProduct - сканирует строку товара, переводя NULL-рейтинг в nil
func scanProduct(row interface{ Scan(...interface{}) error }) (*Product, error) {
	var p Product
	var rating sql.NullFloat64

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.UserSellerID,
		&p.Price,
		&p.Category,
		&p.Discount,
		&p.IsActive,
		&rating,
		&p.RatingCount,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if rating.Valid {
		p.Rating = &rating.Float64
	}

	return &p, nil
}

func (pr *ProductDBRepository) Create(form types.CreateProduct) (*Product, error) {
	query := `
	INSERT INTO product (
		name,
		description,
		user_seller_id,
		price,
		category,
		discount
	) VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING ` + productColumns

	newProduct, err := scanProduct(pr.DB.QueryRow(
		query,
		form.Name,
		form.Description,
		form.UserSellerID,
		form.Price,
		form.Category,
		form.Discount,
	))
	if err != nil {
		pr.Logger.Errorf("Ошибка при создании товара: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return newProduct, nil
}

func (pr *ProductDBRepository) GetTopN(limit int) ([]Product, error) {
	query := `
	SELECT ` + productColumns + `
	FROM product
	WHERE is_active = TRUE
	ORDER BY rating DESC NULLS LAST
	LIMIT $1
	`

	rows, err := pr.DB.Query(query, limit)
	if err != nil {
		pr.Logger.Errorf("Ошибка при получении топ-%d товаров: %v", limit, err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, myErr.ErrDBInternal
		}
		products = append(products, *p)
	}

	return products, nil
}

// Search - запасной поиск по вхождению подстроки в имя,
// используется когда полнотекстовый поиск недоступен
func (pr *ProductDBRepository) Search(query string) ([]Product, error) {
	query = strings.ToLower(query)
	sqlQuery := `
	SELECT ` + productColumns + `,
		(LENGTH(name) - LENGTH(REPLACE(LOWER(name), $1, ''))) AS score
	FROM product
	WHERE is_active = TRUE
	ORDER BY score DESC
	LIMIT 10
	`

	rows, err := pr.DB.Query(sqlQuery, query)
	if err != nil {
		pr.Logger.Errorf("Ошибка при поиске товаров: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		var rating sql.NullFloat64
		var score int
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.UserSellerID,
			&p.Price,
			&p.Category,
			&p.Discount,
			&p.IsActive,
			&rating,
			&p.RatingCount,
			&p.CreatedAt,
			&score,
		)
		if err != nil {
			return nil, myErr.ErrDBInternal
		}
		if rating.Valid {
			p.Rating = &rating.Float64
		}
		products = append(products, p)
	}

	return products, nil
}

func (pr *ProductDBRepository) GetByID(id string) (*Product, error) {
	query := `
	SELECT ` + productColumns + `
	FROM product
	WHERE id = $1
	`

	p, err := scanProduct(pr.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		pr.Logger.Errorf("Ошибка при получении товара по ID: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return p, nil
}

func (pr *ProductDBRepository) GetByIDs(ids []string) ([]Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
	SELECT ` + productColumns + `
	FROM product
	WHERE id = ANY($1)
	`

	rows, err := pr.DB.Query(query, pq.Array(ids))
	if err != nil {
		pr.Logger.Errorf("Ошибка при получении товаров по списку ID: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, myErr.ErrDBInternal
		}
		products = append(products, *p)
	}

	return products, nil
}

func (pr *ProductDBRepository) GetInfoForShoppingCart(ids []string) ([]types.InfoForSC, error) {
	query := `
	SELECT id, name, price, discount, is_active, rating
	FROM product
	WHERE id = ANY($1)
	`

	rows, err := pr.DB.Query(query, pq.Array(ids))
	if err != nil {
		pr.Logger.Errorf("Ошибка при получении информации для корзины: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var infos []types.InfoForSC
	for rows.Next() {
		var info types.InfoForSC
		var rating sql.NullFloat64
		err := rows.Scan(
			&info.ID,
			&info.Name,
			&info.Price,
			&info.Discount,
			&info.IsActive,
			&rating,
		)
		if err != nil {
			return nil, myErr.ErrDBInternal
		}
		if rating.Valid {
			info.Rating = &rating.Float64
		}
		infos = append(infos, info)
	}

	return infos, nil
}
