// service содержит бизнес-логику сервиса аутентификации:
// регистрацию пользователей, проверку учетных данных, выпуск/обновление
// пары токенов и разрешение личности по предъявленному access-токену.
//
// Основные аспекты:
//   - Service не хранит состояние запроса; экземпляр безопасен для
//     конкурентного использования при потокобезопасном storage.Storage.
//   - Каждая операция — короткая цепочка проверок; первый сбой завершает
//     операцию тегированной ошибкой без частичных побочных эффектов.
//   - Ошибки возвращаются и далее маппятся транспортом на HTTP-статусы
//     (см. комментарии к переменным ошибок ниже).
package service

import (
	"errors"
	"time"

	"user-auth-service/internal/cache"
	"user-auth-service/internal/config"
	"user-auth-service/internal/storage"
	"user-auth-service/internal/token"
)

var (
	// ErrAlreadyExists — e-mail уже занят другим пользователем.
	// Транспорт: HTTP 400.
	ErrAlreadyExists = errors.New("user already exists")

	// ErrInvalidCredentials — пара e-mail/пароль неверна или пользователь
	// не найден; причина не различается. Транспорт: HTTP 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken — токен не прошёл проверку подписи/срока/структуры
	// либо предъявлен токен не того типа. Транспорт: HTTP 401.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidRepresentation — токен валиден, но его субъект больше
	// не существует в хранилище. Транспорт: HTTP 401.
	ErrInvalidRepresentation = errors.New("invalid user representation")

	// ErrInactiveUser — учетная запись не активирована.
	// Транспорт: HTTP 400.
	ErrInactiveUser = errors.New("inactive user")

	// ErrInvalidEmail — e-mail имеет некорректный формат.
	// Транспорт: HTTP 400.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrEmptyPassword — пароль пустой. Транспорт: HTTP 400.
	ErrEmptyPassword = errors.New("password is empty")

	// ErrInvalidRole — неизвестная роль в запросе регистрации.
	// Транспорт: HTTP 400.
	ErrInvalidRole = errors.New("invalid role")
)

// Service описывает бизнес-логику сервиса аутентификации.
type Service struct {
	storage storage.Storage
	tokens  *token.Codec
	cfg     config.AuthConfig

	ucache  cache.UserCache // может быть nil, если кэш не сконфигурирован
	userTTL time.Duration
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, tokens *token.Codec, cfg config.AuthConfig) *Service {
	return &Service{
		storage: storage,
		tokens:  tokens,
		cfg:     cfg,
	}
}

// SetUserCache устанавливает кэш пользователей (опционально).
func (s *Service) SetUserCache(c cache.UserCache, ttl time.Duration) {
	s.ucache = c
	s.userTTL = ttl
}
