package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	apierrors "user-auth-service/internal/errors"
	logctx "user-auth-service/internal/pkg/log"
)

// Recover перехватывает панику в обработчике, логирует стек
// и отдаёт клиенту стандартный ответ 500.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logctx.From(r.Context()).Error("panic recovered",
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())))
					apierrors.WriteError(w, r, nil)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
