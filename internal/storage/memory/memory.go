// memory — эталонная реализация storage.Storage в памяти.
//
// Используется в тестах и как образец семантики контракта: те же
// sentinel-ошибки, что у postgres-реализации, и гарантия «не более
// одного успешного SaveUser на email» под конкурентной нагрузкой.
package memory

import (
	"context"
	"fmt"
	"sync"

	"user-auth-service/internal/models"
	"user-auth-service/internal/storage"
)

type Storage struct {
	mu      sync.Mutex
	nextID  int64
	byID    map[int64]models.User
	byEmail map[string]int64
}

// New создаёт пустое хранилище.
func New() *Storage {
	return &Storage{
		nextID:  1,
		byID:    make(map[int64]models.User),
		byEmail: make(map[string]int64),
	}
}

// SaveUser создаёт пользователя; занятый email даёт storage.ErrAlreadyExists.
func (s *Storage) SaveUser(_ context.Context, user *models.User) error {
	const op = "storage.memory.SaveUser"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[user.Email]; ok {
		return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
	}

	user.ID = s.nextID
	s.nextID++

	s.byID[user.ID] = *user
	s.byEmail[user.Email] = user.ID

	return nil
}

// UserByEmail находит пользователя по email.
func (s *Storage) UserByEmail(_ context.Context, email string) (*models.User, error) {
	const op = "storage.memory.UserByEmail"

	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	user := s.byID[id]
	return &user, nil
}

// UserByID находит пользователя по ID.
func (s *Storage) UserByID(_ context.Context, id int64) (*models.User, error) {
	const op = "storage.memory.UserByID"

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return &user, nil
}

// UserExistsByEmail проверяет, занят ли email.
func (s *Storage) UserExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.byEmail[email]
	return ok, nil
}

// Activate помечает пользователя активным.
// Эмулирует внешний административный процесс активации; нужен тестам.
func (s *Storage) Activate(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return false
	}

	user.IsActive = true
	s.byID[id] = user
	return true
}

// Close — no-op для хранилища в памяти.
func (s *Storage) Close() {}

// Проверка на соответствие интерфейсу Storage.
var _ storage.Storage = (*Storage)(nil)
