package usecase

import "errors"

var (
	ErrUnauthenticated       = errors.New("unauthenticated")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrCustomerAlreadyExists = errors.New("customer already exists")
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrInvalidPagination     = errors.New("page and limit must be positive integers")
	ErrGoogleLoginDisabled   = errors.New("google login is not enabled")
	ErrInvalidInput          = errors.New("invalid input")
)
