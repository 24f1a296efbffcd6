package core

import "errors"

var (
	ErrUnauthorized         = errors.New("unauthorized access")
	ErrForbidden            = errors.New("forbidden access")
	ErrNotFound             = errors.New("record not found")
	ErrInvalidID            = errors.New("invalid record id")
	ErrDuplicateID          = errors.New("record id already exists")
	ErrTokenExpired         = errors.New("token has expired")
	ErrInvalidToken         = errors.New("invalid token")
	ErrStoreOperationFailed = errors.New("store operation failed")
)
