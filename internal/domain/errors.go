package domain

import "errors"

// Бизнес-ошибки (маппятся на HTTP коды на границе транспорта)
var (
	ErrBadParams        = errors.New("bad_params")          // 400: не хватает/битые входные данные
	ErrUnauth           = errors.New("unauthorized")        // 401: нет bearer-токена
	ErrBadToken         = errors.New("bad_token")           // 400: токен есть, но невалидный/просроченный
	ErrMethodNotAllowed = errors.New("method_not_allowed")  // 405
	ErrStorage          = errors.New("storage_unavailable") // 500: хранилище недоступно или запрос упал
	ErrUnexpected       = errors.New("unexpected")          // 500
)

// Коды ошибок в конверте ответа
const (
	ErrCodeBadParams        = 1000
	ErrCodeUnauth           = 1001
	ErrCodeBadToken         = 1002
	ErrCodeMethodNotAllowed = 1005
	ErrCodeStorage          = 1050
	ErrCodeUnexpected       = 1999
)
