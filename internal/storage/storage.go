package storage

import (
	"context"
	"errors"

	"user-auth-service/internal/models"
)

var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email).
	ErrAlreadyExists = errors.New("already exists")
)

// UserStorage выполняет операции над пользователями.
// Каждая операция атомарна; уникальность email гарантируется хранилищем:
// из двух конкурентных SaveUser с одним email ровно один завершается
// ошибкой ErrAlreadyExists.
type UserStorage interface {
	// SaveUser создаёт нового пользователя и заполняет сгенерированный ID.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByEmail находит пользователя по email.
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID находит пользователя по ID.
	UserByID(ctx context.Context, id int64) (*models.User, error)
	// UserExistsByEmail проверяет, занят ли email.
	UserExistsByEmail(ctx context.Context, email string) (bool, error)
}

// Storage задаёт контракт работы с БД.
type Storage interface {
	UserStorage
	Close()
}
