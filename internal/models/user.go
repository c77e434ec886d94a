package models

import "time"

// Role — роль пользователя в системе.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole приводит строку к известной роли.
// Пустая строка трактуется как роль по умолчанию (RoleUser).
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleUser, Role(""):
		return RoleUser, true
	default:
		return RoleUser, false
	}
}

// User — модель пользователя в системе.
//
// PasswordHash хранит только bcrypt-хэш; открытый пароль никогда
// не сохраняется и не отдается наружу.
// IsActive при создании всегда false — активация выполняется
// внешним административным процессом и в рамках сервиса не меняется.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Patronymic   string
	Subdivision  string
	Position     string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
