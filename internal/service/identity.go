package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"user-auth-service/internal/models"
	"user-auth-service/internal/pkg/log"
	"user-auth-service/internal/storage"
	"user-auth-service/internal/token"
)

// ResolveIdentity разрешает личность по access-токену.
//
// Цепочка проверок:
//  1. подпись и срок действия — любой сбой даёт ErrInvalidToken;
//  2. тип токена строго access — синтаксически валидный refresh-токен
//     здесь тоже даёт ErrInvalidToken (защита от подмены типа);
//  3. субъект должен существовать в хранилище — иначе
//     ErrInvalidRepresentation.
//
// Активность учетной записи не проверяется; см. ActiveIdentity.
func (s *Service) ResolveIdentity(ctx context.Context, accessToken string) (*models.User, error) {
	const op = "service.identity.ResolveIdentity"

	lg := log.From(ctx)

	claims, err := s.tokens.Decode(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	if claims.TokenType != token.TypeAccess {
		lg.Warn("identity_wrong_token_type",
			slog.String("op", op),
			slog.String("token_type", string(claims.TokenType)),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	if user := s.cachedUser(ctx, claims.UserID); user != nil {
		return user, nil
	}

	user, err := s.storage.UserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("identity_subject_missing",
				slog.String("op", op),
				slog.Int64("user_id", claims.UserID),
			)
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidRepresentation)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.cacheUser(ctx, user)

	return user, nil
}

// ActiveIdentity разрешает личность по access-токену и дополнительно
// требует активную учетную запись; иначе ErrInactiveUser.
func (s *Service) ActiveIdentity(ctx context.Context, accessToken string) (*models.User, error) {
	const op = "service.identity.ActiveIdentity"

	user, err := s.ResolveIdentity(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !user.IsActive {
		log.From(ctx).Warn("identity_inactive_user",
			slog.String("op", op),
			slog.Int64("user_id", user.ID),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrInactiveUser)
	}

	return user, nil
}

// cachedUser возвращает пользователя из кэша, если кэш настроен и запись
// есть; любая ошибка кэша трактуется как промах.
func (s *Service) cachedUser(ctx context.Context, id int64) *models.User {
	if s.ucache == nil {
		return nil
	}

	user, ok, err := s.ucache.Get(ctx, id)
	if err != nil {
		log.From(ctx).Warn("user_cache_get_failed",
			slog.Int64("user_id", id),
			slog.String("err", err.Error()),
		)
		return nil
	}
	if !ok {
		return nil
	}

	return user
}

// cacheUser сохраняет пользователя в кэш (best-effort).
func (s *Service) cacheUser(ctx context.Context, user *models.User) {
	if s.ucache == nil {
		return
	}

	if err := s.ucache.Set(ctx, user, s.userTTL); err != nil {
		log.From(ctx).Warn("user_cache_set_failed",
			slog.Int64("user_id", user.ID),
			slog.String("err", err.Error()),
		)
	}
}
