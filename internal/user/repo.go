package user

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"tovarka-main/internal/roles"
	myErr "tovarka-main/internal/types/errors"
	types "tovarka-main/internal/types/user"
)

type UserDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewUserDBRepository(db *sql.DB, l *zap.SugaredLogger) *UserDBRepository {
	return &UserDBRepository{
		DB:     db,
		Logger: l,
	}
}

func (ur *UserDBRepository) getByEmail(email string) (*User, error) {
	query := `
	SELECT id,
		   name,
		   surname,
		   day_of_birth,
		   sex,
		   registration_date,
		   email,
		   phone_number,
		   password_hash,
		   role,
		   balance,
		   deals_count
	FROM users
	WHERE email = $1
	`

	u := &User{}
	err := ur.DB.QueryRow(query, email).Scan(
		&u.ID, &u.Name, &u.Surname, &u.DayOfBirth,
		&u.Sex, &u.RegistrationDate, &u.Email,
		&u.PhoneNumber, &u.PasswordHash, &u.Role,
		&u.Balance, &u.DealsCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		ur.Logger.Warnf("Ошибка при поиске пользователя по почте: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return u, nil
}

// CheckUser - проверяет пользователя по почте и паролю
func (ur *UserDBRepository) CheckUser(email, password string) (*User, error) {
	u, err := ur.getByEmail(email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, myErr.ErrBadPassword
	}

	return u, nil
}

// CreateUser создает пользователя, новые пользователи получают роль user
func (ur *UserDBRepository) CreateUser(form types.CreateUser) (*User, error) {
	_, err := ur.getByEmail(form.Email)
	if err == nil {
		return nil, myErr.ErrAlreadyExists
	}
	if !errors.Is(err, myErr.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		ur.Logger.Warnf("Ошибка при хэшировании пароля: %v", err)
		return nil, myErr.ErrDBInternal
	}

	u := &User{
		ID:           uuid.New().String(),
		Name:         form.Name,
		Surname:      form.Surname,
		DayOfBirth:   form.DayOfBirth,
		Sex:          form.Sex,
		Email:        form.Email,
		PhoneNumber:  form.PhoneNumber,
		PasswordHash: string(hash),
		Role:         roles.RoleUser,
	}

	query := `
	INSERT INTO users (id, name, surname, day_of_birth, sex, registration_date, email, phone_number, password_hash, role, balance, deals_count)
	VALUES ($1, $2, $3, $4, $5, NOW(), $6, $7, $8, $9, 0, 0)
	`

	_, err = ur.DB.Exec(
		query,
		u.ID, u.Name, u.Surname, u.DayOfBirth, u.Sex,
		u.Email, u.PhoneNumber, u.PasswordHash, u.Role,
	)
	if err != nil {
		ur.Logger.Warnf("Ошибка при создании пользователя: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return u, nil
}

func (ur *UserDBRepository) Info(userID string) (*User, error) {
	query := `
	SELECT id,
		   name,
		   surname,
		   day_of_birth,
		   sex,
		   registration_date,
		   email,
		   phone_number,
		   role,
		   balance,
		   deals_count
	FROM users
	WHERE id = $1
	`

	u := &User{}
	err := ur.DB.QueryRow(query, userID).
		Scan(
			&u.ID, &u.Name, &u.Surname, &u.DayOfBirth,
			&u.Sex, &u.RegistrationDate, &u.Email,
			&u.PhoneNumber, &u.Role, &u.Balance, &u.DealsCount,
		)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		ur.Logger.Warnf("Ошибка при получении информации о пользователе: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return u, nil
}

func (ur *UserDBRepository) ChangeProfile(userID string, updateUser types.ChangeUser) (*User, error) {
	fields := []string{}
	args := []interface{}{}
	argID := 1

	// Динамически добавляем поля в обновление
	if updateUser.Name != "" {
		fields = append(fields, "name = $"+strconv.Itoa(argID))
		args = append(args, updateUser.Name)
		argID++
	}
	if updateUser.Surname != "" {
		fields = append(fields, "surname = $"+strconv.Itoa(argID))
		args = append(args, updateUser.Surname)
		argID++
	}
	if updateUser.Email != "" {
		fields = append(fields, "email = $"+strconv.Itoa(argID))
		args = append(args, updateUser.Email)
		argID++
	}
	if updateUser.PhoneNumber != "" {
		fields = append(fields, "phone_number = $"+strconv.Itoa(argID))
		args = append(args, updateUser.PhoneNumber)
		argID++
	}

	if len(fields) == 0 {
		return ur.Info(userID) // Если ничего не обновляется, просто вернуть текущие данные
	}

	query := "UPDATE users SET " + strings.Join(fields, ", ") + " WHERE id = $" + strconv.Itoa(argID) // nolint:gosec
	args = append(args, userID)

	res, err := ur.DB.Exec(query, args...)
	if err != nil {
		ur.Logger.Warnf("Ошибка при обновлении профиля: %v", err)
		return nil, myErr.ErrDBInternal
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		ur.Logger.Warnf("Не удалось получить количество обновлённых строк: %v", err)
		return nil, myErr.ErrDBInternal
	}

	if rowsAffected == 0 {
		return nil, myErr.ErrNotFound
	}

	return ur.Info(userID) // Возвращаем обновлённые данные пользователя
}

// GetBalanceByUserID возвращает баланс пользователя
func (ur *UserDBRepository) GetBalanceByUserID(userID string) (int64, error) {
	var balance int64
	err := ur.DB.QueryRow(`SELECT balance FROM users WHERE id = $1`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, myErr.ErrNotFound
		}
		ur.Logger.Warnf("Ошибка при получении баланса: %v", err)
		return 0, myErr.ErrDBInternal
	}

	return balance, nil
}

// TopUpBalance изменяет баланс пользователя на amount (может быть отрицательным)
func (ur *UserDBRepository) TopUpBalance(userID string, amount int64) (int64, error) {
	if amount == 0 {
		return 0, myErr.ErrInvalidAmount
	}

	var balance int64
	err := ur.DB.QueryRow(
		`UPDATE users SET balance = balance + $1 WHERE id = $2 RETURNING balance`,
		amount,
		userID,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, myErr.ErrNotFound
		}
		ur.Logger.Warnf("Ошибка при изменении баланса: %v", err)
		return 0, myErr.ErrDBInternal
	}

	return balance, nil
}
