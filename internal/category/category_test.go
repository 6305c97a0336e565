package category

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	myErr "tovarka-main/internal/types/errors"
	types "tovarka-main/internal/types/category"
)

var categoryColumns = []string{"id", "name", "children", "user_id", "created_at"}

func setupRepo(t *testing.T) (*CategoryDBRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger := zaptest.NewLogger(t).Sugar()
	repo := NewCategoryDBRepository(db, logger)

	return repo, mock, func() { db.Close() }
}

func TestCategoryDBRepository_Create(t *testing.T) {
	repo, mock, cleanup := setupRepo(t)
	defer cleanup()

	now := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	form := types.CreateCategory{
		Name:     "Electronics",
		Children: []string{"Phones", "Laptops"},
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO category")).
		WithArgs("Electronics", pq.Array(form.Children), "u1").
		WillReturnRows(sqlmock.NewRows(categoryColumns).
			AddRow(1, "Electronics", pq.Array(form.Children), "u1", now))

	c, err := repo.Create(context.Background(), form, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, c.ID)
	assert.Equal(t, "Electronics", c.Name)
	assert.Equal(t, []string{"Phones", "Laptops"}, c.Children)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryDBRepository_GetByID(t *testing.T) {
	repo, mock, cleanup := setupRepo(t)
	defer cleanup()

	now := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM category")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(categoryColumns).
			AddRow(1, "Electronics", pq.Array([]string{"Phones"}), "u1", now))

	c, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Electronics", c.Name)

	mock.ExpectQuery(regexp.QuoteMeta("FROM category")).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	c, err = repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, myErr.ErrNotFoundCategory)
	assert.Nil(t, c)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryDBRepository_Update(t *testing.T) {
	repo, mock, cleanup := setupRepo(t)
	defer cleanup()

	now := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE category SET name = $1 WHERE id = $2")).
		WithArgs("Gadgets", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM category")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(categoryColumns).
			AddRow(1, "Gadgets", pq.Array([]string{}), "u1", now))

	c, err := repo.Update(context.Background(), 1, types.UpdateCategory{Name: "Gadgets"})
	require.NoError(t, err)
	assert.Equal(t, "Gadgets", c.Name)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE category SET name = $1 WHERE id = $2")).
		WithArgs("Nothing", 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, err = repo.Update(context.Background(), 99, types.UpdateCategory{Name: "Nothing"})
	assert.ErrorIs(t, err, myErr.ErrNotFoundCategory)
	assert.Nil(t, c)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryDBRepository_Delete(t *testing.T) {
	repo, mock, cleanup := setupRepo(t)
	defer cleanup()

	now := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM category")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(categoryColumns).
			AddRow(1, "Electronics", pq.Array([]string{"Phones"}), "u1", now))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM category WHERE id = $1")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, err := repo.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, c.ID)
	assert.Equal(t, "Electronics", c.Name)

	mock.ExpectQuery(regexp.QuoteMeta("FROM category")).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	c, err = repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, myErr.ErrNotFoundCategory)
	assert.Nil(t, c)

	assert.NoError(t, mock.ExpectationsWereMet())
}
