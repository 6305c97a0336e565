package user

import "time"

// CreateUser - форма регистрации пользователя
type CreateUser struct {
	Name        string    `json:"name"`
	Surname     string    `json:"surname"`
	DayOfBirth  time.Time `json:"day_of_birth"`
	Sex         bool      `json:"sex"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Password    string    `json:"password"`
}

// ChangeUser структура пользователя с полями для изменения
type ChangeUser struct {
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}
