package models

import "cadastro/internal/address"

// FieldError lists the failed rules of one input field.
type FieldError struct {
	Field  string   `json:"field"`
	Errors []string `json:"errors"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status" example:"OK"`
	Message string `json:"message" example:"API is running"`
}

type FormatAddressResponse struct {
	Address string `json:"address"`
	Display string `json:"display"`
}

type ParseAddressRequest struct {
	Address string `json:"address"`
}

type ParseAddressResponse struct {
	address.Data
	Display string `json:"display"`
	Valid   bool   `json:"valid"`
}
