package model

import "errors"

// Классы ошибок. Конкретные ошибки оборачивают их через %w,
// обработчики по ним выбирают сообщение для пользователя.
var (
	ErrNotFound       = errors.New("not found")
	ErrMalformedInput = errors.New("malformed input")
	ErrCapability     = errors.New("external capability failure")
	ErrPersistence    = errors.New("persistence failure")
)
