package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"user-auth-service/internal/models"
	"user-auth-service/internal/pkg/log"
	"user-auth-service/internal/pkg/redact"
	"user-auth-service/internal/security"
	"user-auth-service/internal/storage"
	"user-auth-service/internal/token"
)

// RegisterInput — данные запроса регистрации.
type RegisterInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Patronymic  string
	Subdivision string
	Position    string
	Role        string // пустая строка — роль по умолчанию (user)
}

// Register регистрирует нового пользователя.
// Учетная запись создаётся неактивной; активация — внешний
// административный процесс. Наружу транспорт отдаёт только публичное
// представление, без хэша пароля.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	const op = "service.auth.Register"

	lg := log.From(ctx)

	normEmail, err := validateEmail(in.Email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if len(in.Password) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyPassword)
	}

	role, ok := models.ParseRole(in.Role)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidRole)
	}

	exists, err := s.storage.UserExistsByEmail(ctx, normEmail)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		lg.Warn("register_email_taken",
			slog.String("op", op),
			slog.String("email", redact.Email(normEmail)),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
	}

	hashedPassword, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	user := &models.User{
		Email:        normEmail,
		PasswordHash: hashedPassword,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Patronymic:   in.Patronymic,
		Subdivision:  in.Subdivision,
		Position:     in.Position,
		Role:         role,
		IsActive:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		// Гонка двух регистраций: уникальность гарантирует хранилище,
		// проигравший получает тот же ErrAlreadyExists.
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("user_registered",
		slog.String("op", op),
		slog.Int64("user_id", user.ID),
		slog.String("email", redact.Email(user.Email)),
	)

	return user, nil
}

// Login выполняет вход по e-mail и паролю и выпускает пару токенов.
// Несуществующий e-mail и неверный пароль дают одну и ту же ошибку
// ErrInvalidCredentials. Активность учетной записи здесь не проверяется:
// неактивный пользователь получает токены, но отсекается на эндпоинтах,
// требующих активной учетной записи.
func (s *Service) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	const op = "service.auth.Login"

	lg := log.From(ctx)

	normEmail, err := validateEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if len(password) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("login_failed",
				slog.String("op", op),
				slog.String("email", redact.Email(normEmail)),
			)
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !security.CheckPassword(user.PasswordHash, password) {
		lg.Warn("login_failed",
			slog.String("op", op),
			slog.String("email", redact.Email(normEmail)),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	pair, err := s.tokens.Pair(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pair, nil
}

// Refresh обновляет пару токенов по refresh-токену.
// Принимается только токен типа refresh: access-токен не может выпускать
// новые пары. Существование и активность субъекта не перепроверяются —
// валидность определяется только подписью и сроком действия.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	const op = "service.auth.Refresh"

	claims, err := s.tokens.Decode(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	if claims.TokenType != token.TypeRefresh {
		log.From(ctx).Warn("refresh_wrong_token_type",
			slog.String("op", op),
			slog.String("token_type", string(claims.TokenType)),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	pair, err := s.tokens.Pair(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pair, nil
}

// validateEmail проверяет базовый формат email и обрезает пробелы снаружи.
// Адрес нормализуется к нижнему регистру; нормализация единая для
// регистрации и входа.
func validateEmail(raw string) (string, error) {
	const op = "service.auth.validateEmail"

	email := strings.TrimSpace(raw)
	if email == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	return strings.ToLower(email), nil
}
