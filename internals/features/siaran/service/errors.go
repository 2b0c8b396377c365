package service

import "errors"

var (
	// ErrUnauthorized: operasi tulis tanpa user login. Dicek sebelum store disentuh.
	ErrUnauthorized = errors.New("harus login untuk mengubah data siaran")
	// ErrRecordNotFound hanya dipakai edit; query mengembalikan hasil kosong.
	ErrRecordNotFound = errors.New("data siaran tidak ditemukan")
)

// ValidationError untuk input yang kosong atau tidak valid.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
