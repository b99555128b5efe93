package models

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("требуется аутентификация")
	// ErrForbidden is an authenticated caller lacking the privilege.
	ErrForbidden          = fmt.Errorf("%w: доступ запрещен", ErrUnauthorized)
	ErrNotFound           = errors.New("не найдено")
	ErrValidation         = errors.New("неверные данные")
	ErrStorageUnavailable = errors.New("хранилище медиа недоступно")
)
