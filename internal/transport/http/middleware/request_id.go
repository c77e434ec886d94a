package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestID обеспечивает наличие X-Request-Id:
//  1. читает заголовок X-Request-Id, если он есть;
//  2. иначе генерирует новый идентификатор;
//  3. кладёт id в Response Header и Request Header — его читают
//     логирующий мидлвар и errors.WriteError.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-Id")
			if id == "" {
				id = uuid.NewString()
				r.Header.Set("X-Request-Id", id)
			}
			w.Header().Set("X-Request-Id", id)

			next.ServeHTTP(w, r)
		})
	}
}
