package rating

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tovarka-main/internal/product"
	myErr "tovarka-main/internal/types/errors"
	types "tovarka-main/internal/types/rating"
)

type RatingDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewRatingDBRepository(db *sql.DB, l *zap.SugaredLogger) *RatingDBRepository {
	return &RatingDBRepository{
		DB:     db,
		Logger: l,
	}
}

// lockProduct - берет блокировку строки товара до конца транзакции.
// Все мутации отзывов одного товара проходят через эту блокировку,
// поэтому пересчет агрегата не перетирается параллельной записью.
func (rr *RatingDBRepository) lockProduct(ctx context.Context, tx *sql.Tx, productID string) error {
	var id string
	err := tx.QueryRowContext(ctx, `SELECT id FROM product WHERE id = $1 FOR UPDATE`, productID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return myErr.ErrNotFoundProduct
		}
		rr.Logger.Warnf("Ошибка при блокировке товара %s: %v", productID, err)
		return myErr.ErrDBInternal
	}

	return nil
}

// aggregate - считает сумму и количество отзывов товара внутри транзакции
func (rr *RatingDBRepository) aggregate(ctx context.Context, tx *sql.Tx, productID string) (int64, int64, error) {
	var sum, count int64
	err := tx.QueryRowContext(
		ctx,
		`SELECT COALESCE(SUM(rating), 0), COUNT(*) FROM product_rating WHERE product_id = $1`,
		productID,
	).Scan(&sum, &count)
	if err != nil {
		rr.Logger.Warnf("Ошибка при подсчете рейтинга товара %s: %v", productID, err)
		return 0, 0, myErr.ErrDBInternal
	}

	return sum, count, nil
}

// getProductTx - читает строку товара внутри транзакции
func (rr *RatingDBRepository) getProductTx(ctx context.Context, tx *sql.Tx, productID string) (*product.Product, error) {
	query := `
	SELECT id, name, description, user_seller_id, price, category, discount, is_active, rating, rating_count, created_at
	FROM product
	WHERE id = $1
	`

	var p product.Product
	var rating sql.NullFloat64
	err := tx.QueryRowContext(ctx, query, productID).Scan(
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
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFoundProduct
		}
		rr.Logger.Warnf("Ошибка при чтении товара %s: %v", productID, err)
		return nil, myErr.ErrDBInternal
	}

	if rating.Valid {
		p.Rating = &rating.Float64
	}

	return &p, nil
}

// Create - создает отзыв и в той же транзакции пересчитывает рейтинг товара
func (rr *RatingDBRepository) Create(
	ctx context.Context,
	form types.CreateRating,
	userID string,
) (*product.Product, *Rating, error) {
	tx, err := rr.DB.BeginTx(ctx, nil)
	if err != nil {
		rr.Logger.Warnf("Ошибка при открытии транзакции: %v", err)
		return nil, nil, myErr.ErrDBInternal
	}
	defer tx.Rollback() // nolint:errcheck

	// Блокировка заодно проверяет, что товар существует
	if err := rr.lockProduct(ctx, tx, form.ProductID); err != nil {
		return nil, nil, err
	}

	r := &Rating{
		ID:        uuid.New().String(),
		ProductID: form.ProductID,
		UserID:    userID,
		Rating:    form.Rating,
		Text:      form.Text,
	}

	err = tx.QueryRowContext(
		ctx,
		`
		INSERT INTO product_rating (id, product_id, user_id, rating, text)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
		`,
		r.ID,
		r.ProductID,
		r.UserID,
		r.Rating,
		r.Text,
	).Scan(&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		rr.Logger.Warnf("Ошибка при создании отзыва: %v", err)
		return nil, nil, myErr.ErrDBInternal
	}

	sum, count, err := rr.aggregate(ctx, tx, form.ProductID)
	if err != nil {
		return nil, nil, err
	}

	// Первый отзыв записывается как есть, без прохода через среднее
	newRating := float64(form.Rating)
	if count > 1 {
		newRating = float64(sum) / float64(count)
	}

	_, err = tx.ExecContext(
		ctx,
		`UPDATE product SET rating = $1, rating_count = $2 WHERE id = $3`,
		newRating,
		count,
		form.ProductID,
	)
	if err != nil {
		rr.Logger.Warnf("Ошибка при обновлении рейтинга товара %s: %v", form.ProductID, err)
		return nil, nil, myErr.ErrDBInternal
	}

	p, err := rr.getProductTx(ctx, tx, form.ProductID)
	if err != nil {
		return nil, nil, err
	}

	if err = tx.Commit(); err != nil {
		rr.Logger.Warnf("Ошибка при коммите транзакции: %v", err)
		return nil, nil, myErr.ErrDBInternal
	}

	return p, r, nil
}

// GetAll - возвращает все отзывы с именем товара и данными автора
func (rr *RatingDBRepository) GetAll(ctx context.Context) ([]RatingWithRefs, error) {
	query := `
	SELECT r.id, r.product_id, r.user_id, r.rating, r.text, r.created_at, r.updated_at,
		   p.name, u.name, u.email
	FROM product_rating r
	JOIN product p ON p.id = r.product_id
	JOIN users u ON u.id = r.user_id
	ORDER BY r.created_at DESC
	`

	rows, err := rr.DB.QueryContext(ctx, query)
	if err != nil {
		rr.Logger.Warnf("Ошибка при получении отзывов: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var ratings []RatingWithRefs
	for rows.Next() {
		var r RatingWithRefs
		err := rows.Scan(
			&r.ID,
			&r.ProductID,
			&r.UserID,
			&r.Rating.Rating,
			&r.Text,
			&r.CreatedAt,
			&r.UpdatedAt,
			&r.ProductName,
			&r.UserName,
			&r.UserEmail,
		)
		if err != nil {
			rr.Logger.Warnf("Ошибка при сканировании отзыва: %v", err)
			return nil, myErr.ErrDBInternal
		}
		ratings = append(ratings, r)
	}

	if err := rows.Err(); err != nil {
		rr.Logger.Warnf("Ошибка при итерации по отзывам: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return ratings, nil
}

// GetByID - получает конкретный отзыв по ID
func (rr *RatingDBRepository) GetByID(ctx context.Context, ratingID string) (*Rating, error) {
	query := `
	SELECT id, product_id, user_id, rating, text, created_at, updated_at
	FROM product_rating
	WHERE id = $1
	`

	r := &Rating{}
	err := rr.DB.QueryRowContext(ctx, query, ratingID).Scan(
		&r.ID,
		&r.ProductID,
		&r.UserID,
		&r.Rating,
		&r.Text,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFoundRating
		}
		rr.Logger.Warnf("Ошибка при получении отзыва %s: %v", ratingID, err)
		return nil, myErr.ErrDBInternal
	}

	return r, nil
}

// Update - обновляет отзыв и пересчитывает рейтинг итогового товара.
// Пересчет идет по product_id отзыва после обновления, а не по id отзыва.
// Если отзыв перенесен на другой товар, старый товар тоже пересчитывается.
func (rr *RatingDBRepository) Update( // nolint:gocyclo
	ctx context.Context,
	ratingID string,
	form types.UpdateRating,
) (*product.Product, *Rating, error) {
	tx, err := rr.DB.BeginTx(ctx, nil)
	if err != nil {
		rr.Logger.Warnf("Ошибка при открытии транзакции: %v", err)
		return nil, nil, myErr.ErrDBInternal
	}
	defer tx.Rollback() // nolint:errcheck

	var current Rating
	err = tx.QueryRowContext(
		ctx,
		`SELECT id, product_id, user_id, rating, text, created_at, updated_at FROM product_rating WHERE id = $1`,
		ratingID,
	).Scan(
		&current.ID,
		&current.ProductID,
		&current.UserID,
		&current.Rating,
		&current.Text,
		&current.CreatedAt,
		&current.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, myErr.ErrNotFoundRating
		}
		rr.Logger.Warnf("Ошибка при получении отзыва %s: %v", ratingID, err)
		return nil, nil, myErr.ErrDBInternal
	}

	targetProductID := current.ProductID
	if form.ProductID != "" {
		targetProductID = form.ProductID
	}

	if err := rr.lockProduct(ctx, tx, targetProductID); err != nil {
		return nil, nil, err
	}
	if targetProductID != current.ProductID {
		if err := rr.lockProduct(ctx, tx, current.ProductID); err != nil {
			return nil, nil, err
		}
	}

	// Динамически добавляем поля в обновление
	fields := []string{"rating = $1", "updated_at = NOW()"}
	args := []interface{}{form.Rating}
	argID := 2

	if form.ProductID != "" {
		fields = append(fields, "product_id = $"+strconv.Itoa(argID))
		args = append(args, form.ProductID)
		argID++
	}
	if form.Text != "" {
		fields = append(fields, "text = $"+strconv.Itoa(argID))
		args = append(args, form.Text)
		argID++
	}

	query := "UPDATE product_rating SET " + strings.Join(fields, ", ") +
		" WHERE id = $" + strconv.Itoa(argID) // nolint:gosec
	args = append(args, ratingID)

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		rr.Logger.Warnf("Ошибка при обновлении отзыва %s: %v", ratingID, err)
		return nil, nil, myErr.ErrDBInternal
	}

	updated := &Rating{}
	err = tx.QueryRowContext(
		ctx,
		`SELECT id, product_id, user_id, rating, text, created_at, updated_at FROM product_rating WHERE id = $1`,
		ratingID,
	).Scan(
		&updated.ID,
		&updated.ProductID,
		&updated.UserID,
		&updated.Rating,
		&updated.Text,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		rr.Logger.Warnf("Ошибка при чтении обновленного отзыва %s: %v", ratingID, err)
		return nil, nil, myErr.ErrDBInternal
	}

	sum, count, err := rr.aggregate(ctx, tx, targetProductID)
	if err != nil {
		return nil, nil, err
	}

	// Пустой набор отзывов - рейтинг товара не трогаем, деления на ноль нет
	if count > 0 {
		_, err = tx.ExecContext(
			ctx,
			`UPDATE product SET rating = $1, rating_count = $2 WHERE id = $3`,
			float64(sum)/float64(count),
			count,
			targetProductID,
		)
		if err != nil {
			rr.Logger.Warnf("Ошибка при обновлении рейтинга товара %s: %v", targetProductID, err)
			return nil, nil, myErr.ErrDBInternal
		}
	}

	// Отзыв уехал на другой товар - пересчитываем и покинутый товар
	if targetProductID != current.ProductID {
		if err := rr.recalcAfterRemoval(ctx, tx, current.ProductID); err != nil {
			return nil, nil, err
		}
	}

	p, err := rr.getProductTx(ctx, tx, targetProductID)
	if err != nil {
		return nil, nil, err
	}

	if err = tx.Commit(); err != nil {
		rr.Logger.Warnf("Ошибка при коммите транзакции: %v", err)
		return nil, nil, myErr.ErrDBInternal
	}

	return p, updated, nil
}

// Delete - удаляет отзыв и пересчитывает рейтинг товара.
// Последний отзыв сбрасывает рейтинг товара в NULL.
func (rr *RatingDBRepository) Delete(ctx context.Context, ratingID string) (*Rating, error) {
	tx, err := rr.DB.BeginTx(ctx, nil)
	if err != nil {
		rr.Logger.Warnf("Ошибка при открытии транзакции: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer tx.Rollback() // nolint:errcheck

	r := &Rating{}
	err = tx.QueryRowContext(
		ctx,
		`SELECT id, product_id, user_id, rating, text, created_at, updated_at FROM product_rating WHERE id = $1`,
		ratingID,
	).Scan(
		&r.ID,
		&r.ProductID,
		&r.UserID,
		&r.Rating,
		&r.Text,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFoundRating
		}
		rr.Logger.Warnf("Ошибка при получении отзыва %s: %v", ratingID, err)
		return nil, myErr.ErrDBInternal
	}

	if err := rr.lockProduct(ctx, tx, r.ProductID); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_rating WHERE id = $1`, ratingID); err != nil {
		rr.Logger.Warnf("Ошибка при удалении отзыва %s: %v", ratingID, err)
		return nil, myErr.ErrDBInternal
	}

	if err := rr.recalcAfterRemoval(ctx, tx, r.ProductID); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		rr.Logger.Warnf("Ошибка при коммите транзакции: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return r, nil
}

// recalcAfterRemoval - пересчет после того, как товар лишился отзыва.
// Без оставшихся отзывов рейтинг сбрасывается в NULL, не остается устаревшим.
func (rr *RatingDBRepository) recalcAfterRemoval(ctx context.Context, tx *sql.Tx, productID string) error {
	sum, count, err := rr.aggregate(ctx, tx, productID)
	if err != nil {
		return err
	}

	if count == 0 {
		_, err = tx.ExecContext(
			ctx,
			`UPDATE product SET rating = NULL, rating_count = 0 WHERE id = $1`,
			productID,
		)
	} else {
		_, err = tx.ExecContext(
			ctx,
			`UPDATE product SET rating = $1, rating_count = $2 WHERE id = $3`,
			float64(sum)/float64(count),
			count,
			productID,
		)
	}
	if err != nil {
		rr.Logger.Warnf("Ошибка при обновлении рейтинга товара %s: %v", productID, err)
		return myErr.ErrDBInternal
	}

	return nil
}
