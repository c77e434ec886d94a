// token реализует выпуск и проверку подписанных самодостаточных токенов.
//
// Токен — компактный JWT (HS256) с полезной нагрузкой
// {user_id, token_type, exp}. Сервер токены не хранит: валидность
// определяется только подписью и сроком действия.
//
// Все ошибки проверки (подпись, структура, алгоритм, срок действия)
// схлопываются в один ErrInvalidToken — внешнему вызывающему причина
// не раскрывается, различие остаётся в логах.
package token

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"user-auth-service/internal/config"
	"user-auth-service/internal/models"
	"user-auth-service/internal/pkg/log"
)

// Type — тип токена; определяет, в каких операциях токен допустим.
type Type string

const (
	// TypeAccess — короткоживущий токен для авторизации обычных запросов.
	TypeAccess Type = "access"
	// TypeRefresh — токен, предназначенный только для выпуска новой пары.
	TypeRefresh Type = "refresh"
)

// ErrInvalidToken — токен не прошёл проверку подписи/структуры/срока.
var ErrInvalidToken = errors.New("invalid token")

// Claims — типизированная полезная нагрузка токена.
// Имена claim'ов (user_id, token_type) фиксированы wire-контрактом.
type Claims struct {
	UserID    int64 `json:"user_id"`
	TokenType Type  `json:"token_type"`
	jwt.RegisteredClaims
}

// Codec подписывает и проверяет токены процессным секретом.
// Конфигурация неизменяема после создания; экземпляр безопасен
// для конкурентного использования.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewCodec создаёт кодек из конфигурации аутентификации.
func NewCodec(cfg config.AuthConfig) *Codec {
	return &Codec{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}
}

// AccessTTL возвращает срок действия access-токена.
func (c *Codec) AccessTTL() time.Duration { return c.accessTTL }

// Issue выпускает подписанный токен заданного типа со сроком действия ttl.
func (c *Codec) Issue(ctx context.Context, userID int64, typ Type, ttl time.Duration) (string, error) {
	return c.issue(ctx, userID, typ, ttl, time.Now().UTC())
}

// Pair выпускает пару access+refresh для одного пользователя
// в один момент времени.
func (c *Codec) Pair(ctx context.Context, userID int64) (*models.TokenPair, error) {
	const op = "token.Pair"

	now := time.Now().UTC()

	access, err := c.issue(ctx, userID, TypeAccess, c.accessTTL, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	refresh, err := c.issue(ctx, userID, TypeRefresh, c.refreshTTL, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.TokenPair{
		AccessToken:     access,
		RefreshToken:    refresh,
		AccessExpiresAt: now.Add(c.accessTTL),
	}, nil
}

func (c *Codec) issue(ctx context.Context, userID int64, typ Type, ttl time.Duration, now time.Time) (string, error) {
	const op = "token.issue"

	claims := Claims{
		UserID:    userID,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		log.From(ctx).Error("token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// Decode проверяет подпись, алгоритм и срок действия токена.
// Возвращает типизированные claims либо ErrInvalidToken; различие
// «просрочен/подделан» остаётся только в логах.
func (c *Codec) Decode(ctx context.Context, raw string) (*Claims, error) {
	const op = "token.Decode"

	lg := log.From(ctx)

	parsed, err := jwt.ParseWithClaims(raw, &Claims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("%s: unexpected signing method", op)
			}

			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			lg.Warn("token_expired", slog.String("op", op))
		} else {
			lg.Warn("token_malformed_or_tampered", slog.String("op", op))
		}

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	if claims.UserID == 0 {
		lg.Warn("token_missing_subject", slog.String("op", op))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return claims, nil
}
