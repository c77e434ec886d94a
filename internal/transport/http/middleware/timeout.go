package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout ограничивает общее время обработки запроса через дедлайн контекста.
// Обработчики и нижние слои реагируют на ctx.Done(), маппинг возникающих
// context.DeadlineExceeded в HTTP-ответ делает слой ошибок.
// При d <= 0 middleware не делает ничего.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
