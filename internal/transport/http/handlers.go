// transport/http содержит REST-эндпоинты сервиса аутентификации.
// Здесь выполняется только парсинг запросов и маппинг данных/ошибок
// доменного слоя; вся бизнес-логика находится в пакете service.
package http

import (
	"encoding/json"
	"net/http"

	apierrors "user-auth-service/internal/errors"
	"user-auth-service/internal/service"
	"user-auth-service/internal/transport/http/middleware"
)

// Handlers агрегирует зависимости эндпоинтов.
type Handlers struct {
	svc *service.Service
}

func NewHandlers(svc *service.Service) *Handlers {
	return &Handlers{svc: svc}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// Register — POST /register/.
// Ответ — публичное представление созданной (неактивной) учетной
// записи; токены при регистрации не выдаются.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var in RegisterRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, apierrors.ErrInvalidArgument)
		return
	}

	user, err := h.svc.Register(r.Context(), service.RegisterInput{
		Email:       in.Email,
		Password:    in.Password,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Patronymic:  in.Patronymic,
		Subdivision: in.Subdivision,
		Position:    in.Position,
		Role:        in.Role,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userToResponse(user))
}

// Login — POST /login/.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in LoginRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, apierrors.ErrInvalidArgument)
		return
	}

	pair, err := h.svc.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokensToResponse(pair))
}

// Me — GET /me/. Личность уже разрешена мидлваром Authenticate.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		// Маршрут сконфигурирован без Authenticate — программная ошибка.
		apierrors.WriteError(w, r, nil)
		return
	}

	writeJSON(w, http.StatusOK, userToResponse(user))
}

// Refresh — POST /refresh/.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	var in RefreshRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, apierrors.ErrInvalidArgument)
		return
	}

	pair, err := h.svc.Refresh(r.Context(), in.Refresh)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokensToResponse(pair))
}
