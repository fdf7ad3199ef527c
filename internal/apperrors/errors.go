package apperrors

import (
	"errors"
)

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrTokenMissing         = errors.New("token is missing")
	ErrTokenInvalid         = errors.New("token is invalid")
	ErrTokenExpired         = errors.New("token is expired")
	ErrRefreshTokenNotFound = errors.New("refresh token not found")

	ErrTodoNotFound = errors.New("todo not found")
)
