// errors стандартизирует ответы об ошибках HTTP-слоя.
// На вход принимается ошибка доменного слоя (service), на выход:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Все сбои проверки токена схлопнуты в один внешний сигнал, а
// «e-mail не найден» и «пароль неверен» неразличимы — причины остаются
// только во внутренних логах.
package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"user-auth-service/internal/service"
	"user-auth-service/internal/storage"
)

// Нестандартный код, часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// APIError — единый формат ошибки для клиента.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку доменного слоя в HTTP-статус и
// унифицированный ответ.
//
// err == nil — программная ошибка вызова: возвращаем 500/internal,
// чтобы не послать "200 OK" с телом ошибки и не замаскировать баг.
func ToHTTP(err error) (int, ErrorResponse) {
	status, code, msg := mapError(err)
	return status, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если
// он есть; на 401 выставляет WWW-Authenticate: Bearer.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// ErrInvalidArgument — локальная ошибка парсинга запроса (битый JSON,
// неизвестные поля). Транспорт: HTTP 400.
var ErrInvalidArgument = errors.New("invalid argument")

// mapError — маппинг доменных ошибок на HTTP-статус/код/сообщение.
// Сообщения фиксированы и не зависят от внутренней причины.
func mapError(err error) (int, string, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, "internal", "internal error"
	case errors.Is(err, ErrInvalidArgument),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrEmptyPassword),
		errors.Is(err, service.ErrInvalidRole):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case errors.Is(err, service.ErrAlreadyExists):
		return http.StatusBadRequest, "already_exists", "user already exists"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials", "incorrect email or password"
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid_token", "could not validate credentials"
	case errors.Is(err, service.ErrInvalidRepresentation):
		return http.StatusUnauthorized, "invalid_representation", "incorrect user representation"
	case errors.Is(err, service.ErrInactiveUser):
		return http.StatusBadRequest, "inactive_user", "inactive user"
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, "not_found", "not found"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "canceled", "canceled"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
