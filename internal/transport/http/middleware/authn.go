package middleware

import (
	"context"
	"net/http"
	"strings"

	apierrors "user-auth-service/internal/errors"
	"user-auth-service/internal/models"
	"user-auth-service/internal/service"
)

type ctxUserKey struct{}

// CurrentUser возвращает пользователя, положенного в контекст Authenticate.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(ctxUserKey{}).(*models.User)
	return u, ok
}

// Authenticate проверяет Bearer-токен и кладёт пользователя в контекст.
// requireActive дополнительно требует is_active у учётной записи.
//
// Отсутствующий или некорректный заголовок Authorization трактуется так же,
// как невалидный токен, чтобы не раскрывать причину отказа.
func Authenticate(svc *service.Service, requireActive bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				apierrors.WriteError(w, r, service.ErrInvalidToken)
				return
			}

			var (
				user *models.User
				err  error
			)
			if requireActive {
				user, err = svc.ActiveIdentity(r.Context(), raw)
			} else {
				user, err = svc.ResolveIdentity(r.Context(), raw)
			}
			if err != nil {
				apierrors.WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), ctxUserKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken извлекает токен из "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
