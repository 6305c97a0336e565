package category

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"go.uber.org/zap"

	myErr "tovarka-main/internal/types/errors"
	types "tovarka-main/internal/types/category"
)

type CategoryDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewCategoryDBRepository(db *sql.DB, l *zap.SugaredLogger) *CategoryDBRepository {
	return &CategoryDBRepository{
		DB:     db,
		Logger: l,
	}
}

func (cr *CategoryDBRepository) Create(
	ctx context.Context,
	form types.CreateCategory,
	userID string,
) (*Category, error) {
	query := `
	INSERT INTO category (name, children, user_id)
	VALUES ($1, $2, $3)
	RETURNING id, name, children, user_id, created_at
	`

	c := &Category{}
	err := cr.DB.QueryRowContext(ctx, query, form.Name, pq.Array(form.Children), userID).Scan(
		&c.ID,
		&c.Name,
		pq.Array(&c.Children),
		&c.UserID,
		&c.CreatedAt,
	)
	if err != nil {
		cr.Logger.Warnf("Ошибка при создании категории: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return c, nil
}

func (cr *CategoryDBRepository) GetAll(ctx context.Context) ([]Category, error) {
	query := `
	SELECT id, name, children, user_id, created_at
	FROM category
	ORDER BY id
	`

	rows, err := cr.DB.QueryContext(ctx, query)
	if err != nil {
		cr.Logger.Warnf("Ошибка при получении категорий: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		err := rows.Scan(
			&c.ID,
			&c.Name,
			pq.Array(&c.Children),
			&c.UserID,
			&c.CreatedAt,
		)
		if err != nil {
			cr.Logger.Warnf("Ошибка при сканировании категории: %v", err)
			return nil, myErr.ErrDBInternal
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		cr.Logger.Warnf("Ошибка при итерации по категориям: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return categories, nil
}

func (cr *CategoryDBRepository) GetByID(ctx context.Context, categoryID int) (*Category, error) {
	query := `
	SELECT id, name, children, user_id, created_at
	FROM category
	WHERE id = $1
	`

	c := &Category{}
	err := cr.DB.QueryRowContext(ctx, query, categoryID).Scan(
		&c.ID,
		&c.Name,
		pq.Array(&c.Children),
		&c.UserID,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFoundCategory
		}
		cr.Logger.Warnf("Ошибка при получении категории %d: %v", categoryID, err)
		return nil, myErr.ErrDBInternal
	}

	return c, nil
}

func (cr *CategoryDBRepository) Update(
	ctx context.Context,
	categoryID int,
	form types.UpdateCategory,
) (*Category, error) {
	fields := []string{}
	args := []interface{}{}
	argID := 1

	// Динамически добавляем поля в обновление
	if form.Name != "" {
		fields = append(fields, "name = $"+strconv.Itoa(argID))
		args = append(args, form.Name)
		argID++
	}
	if form.Children != nil {
		fields = append(fields, "children = $"+strconv.Itoa(argID))
		args = append(args, pq.Array(form.Children))
		argID++
	}

	if len(fields) == 0 {
		return cr.GetByID(ctx, categoryID) // Если ничего не обновляется, просто вернуть текущие данные
	}

	query := "UPDATE category SET " + strings.Join(fields, ", ") +
		" WHERE id = $" + strconv.Itoa(argID) // nolint:gosec
	args = append(args, categoryID)

	result, err := cr.DB.ExecContext(ctx, query, args...)
	if err != nil {
		cr.Logger.Warnf("Ошибка при обновлении категории %d: %v", categoryID, err)
		return nil, myErr.ErrDBInternal
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		cr.Logger.Warnf("Не удалось получить количество обновлённых строк: %v", err)
		return nil, myErr.ErrDBInternal
	}

	if rowsAffected == 0 {
		return nil, myErr.ErrNotFoundCategory
	}

	return cr.GetByID(ctx, categoryID)
}

func (cr *CategoryDBRepository) Delete(ctx context.Context, categoryID int) (*Category, error) {
	c, err := cr.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	result, err := cr.DB.ExecContext(ctx, `DELETE FROM category WHERE id = $1`, categoryID)
	if err != nil {
		cr.Logger.Warnf("Ошибка при удалении категории %d: %v", categoryID, err)
		return nil, myErr.ErrDBInternal
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		cr.Logger.Warnf("Не удалось получить количество удалённых строк: %v", err)
		return nil, myErr.ErrDBInternal
	}

	if rowsAffected == 0 {
		return nil, myErr.ErrNotFoundCategory
	}

	return c, nil
}
