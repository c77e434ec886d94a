// Входные/выходные модели REST-эндпоинтов.
package http

import "user-auth-service/internal/models"

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Patronymic  string `json:"patronymic"`
	Subdivision string `json:"subdivision"`
	Position    string `json:"position"`
	// Role опциональна; пустое значение — роль по умолчанию (user).
	Role string `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// TokensResponse — пара токенов; имена полей фиксированы wire-контрактом.
type TokensResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// UserResponse — публичное представление учетной записи.
// Хэш пароля наружу не отдается никогда.
type UserResponse struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Patronymic  string `json:"patronymic"`
	Subdivision string `json:"subdivision"`
	Position    string `json:"position"`
	Role        string `json:"role"`
	IsActive    bool   `json:"is_active"`
}

func userToResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Patronymic:  u.Patronymic,
		Subdivision: u.Subdivision,
		Position:    u.Position,
		Role:        string(u.Role),
		IsActive:    u.IsActive,
	}
}

func tokensToResponse(p *models.TokenPair) TokensResponse {
	return TokensResponse{
		Access:  p.AccessToken,
		Refresh: p.RefreshToken,
	}
}
