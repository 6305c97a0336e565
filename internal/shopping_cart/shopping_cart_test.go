package shopping_cart

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	myErr "tovarka-main/internal/types/errors"
)

func setup(t *testing.T) (*ShoppingCartRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("ошибка при создании mock db: %s", err)
	}

	logger := zaptest.NewLogger(t).Sugar()
	repo := &ShoppingCartRepository{
		DB:     db,
		Logger: logger,
	}

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestAddProduct(t *testing.T) {
	tests := []struct {
		name          string
		mockBehavior  func(mock sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name: "успешное добавление",
			mockBehavior: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO shopping_cart(user_id, product_id) VALUES ($1, $2)")).
					WithArgs("user123", "prod456").
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			expectedError: nil,
		},
		{
			name: "ошибка БД",
			mockBehavior: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO shopping_cart(user_id, product_id) VALUES ($1, $2)")).
					WithArgs("user123", "prod456").
					WillReturnError(errors.New("db error"))
			},
			expectedError: myErr.ErrDBInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setup(t)
			defer cleanup()

			tt.mockBehavior(mock)

			err := repo.AddProduct("user123", "prod456")
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedError))
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDeleteProduct(t *testing.T) {
	tests := []struct {
		name          string
		mockBehavior  func(mock sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name: "успешное удаление",
			mockBehavior: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM shopping_cart WHERE user_id = $1 AND product_id = $2")).
					WithArgs("user123", "prod456").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedError: nil,
		},
		{
			name: "ошибка БД",
			mockBehavior: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM shopping_cart WHERE user_id = $1 AND product_id = $2")).
					WithArgs("user123", "prod456").
					WillReturnError(errors.New("delete failed"))
			},
			expectedError: myErr.ErrDBInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setup(t)
			defer cleanup()

			tt.mockBehavior(mock)

			err := repo.DeleteProduct("user123", "prod456")
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedError))
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetByUserID(t *testing.T) {
	tests := []struct {
		name           string
		mockBehavior   func(mock sqlmock.Sqlmock)
		expectedResult []string
		expectedError  error
	}{
		{
			name: "успешный возврат",
			mockBehavior: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"product_id"}).
					AddRow("prod1").
					AddRow("prod2")
				mock.ExpectQuery(regexp.QuoteMeta("SELECT product_id FROM shopping_cart WHERE user_id = $1")).
					WithArgs("user123").
					WillReturnRows(rows)
			},
			expectedResult: []string{"prod1", "prod2"},
			expectedError:  nil,
		},
		{
			name: "ошибка БД",
			mockBehavior: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT product_id FROM shopping_cart WHERE user_id = $1")).
					WithArgs("user123").
					WillReturnError(errors.New("db failure"))
			},
			expectedResult: nil,
			expectedError:  myErr.ErrDBInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setup(t)
			defer cleanup()

			tt.mockBehavior(mock)

			res, err := repo.GetByUserID("user123")
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedError))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedResult, res)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
