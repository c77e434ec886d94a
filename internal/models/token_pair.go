package models

import "time"

// TokenPair — пара токенов, выдаваемая при логине и обновлении.
//
// Оба токена подписаны одним секретом и выпущены в один момент времени
// для одного и того же пользователя; различаются только типом и TTL.
// На сервере токены не хранятся — их валидность определяется подписью
// и сроком действия.
type TokenPair struct {
	// AccessToken — короткоживущий JWT для авторизации запросов.
	AccessToken string
	// RefreshToken — JWT для выпуска новой пары токенов.
	RefreshToken string
	// AccessExpiresAt — время истечения действия access-токена (UTC).
	AccessExpiresAt time.Time
}
