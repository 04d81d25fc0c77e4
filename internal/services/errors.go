package services

import "errors"

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrInvalidToken       = errors.New("auth: invalid or expired token")
	ErrClientNotFound     = errors.New("client: not found")
	ErrDuplicateEmail     = errors.New("client: email already registered")
	ErrInvalidCEP         = errors.New("cep: must contain 8 digits")
	ErrCEPNotFound        = errors.New("cep: not found")
	ErrCEPLookupFailed    = errors.New("cep: lookup failed")
)
