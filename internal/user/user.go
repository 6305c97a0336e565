package user

import (
	"time"

	"tovarka-main/internal/roles"
	types "tovarka-main/internal/types/user"
)

const (
	SexManT   = true
	SexWomenT = false
)

// User структура пользователя
type User struct {
	ID               string     `json:"user_id"` // uuid
	Name             string     `json:"name"`
	Surname          string     `json:"surname"`
	DayOfBirth       time.Time  `json:"day_of_birth"`
	Sex              bool       `json:"sex"`
	RegistrationDate time.Time  `json:"registration_date"`
	Email            string     `json:"email"`
	PhoneNumber      string     `json:"phone_number"`
	PasswordHash     string     `json:"-"`
	Role             roles.Role `json:"role"`
	Balance          int64      `json:"balance"`
	DealsCount       int        `json:"deals_count"` // Кол-во сделок
}

// UserRepo интерфейс удовлетворяющий методам сущности пользователя
//
//go:generate mockgen -source=user.go -destination=../mocks/mock_user_repo.go -package=mocks
type UserRepo interface {
	// CheckUser - проверяет пользователя по почте и паролю
	CheckUser(email, password string) (*User, error)
	// CreateUser создает пользователя с ролью user
	CreateUser(u types.CreateUser) (*User, error)
	// Info возвращает информацию о пользователе
	Info(userID string) (*User, error)
	// ChangeProfile меняет поля пользователя с userID по updateUser
	ChangeProfile(userID string, updateUser types.ChangeUser) (*User, error)
	// GetBalanceByUserID возвращает баланс пользователя
	GetBalanceByUserID(userID string) (int64, error)
	// TopUpBalance изменяет баланс пользователя на amount (может быть отрицательным)
	TopUpBalance(userID string, amount int64) (int64, error)
}
