// Package validation holds the input schemas checked at the HTTP boundary.
//
// Each schema is a list of fields with the validator tags that apply to them
// and the message reported when a tag fails. Every failing rule of a field is
// reported, not only the first.
package validation

import (
	"github.com/go-playground/validator/v10"

	"cadastro/internal/models"
	"cadastro/internal/utils"
)

// MinPhoneDigits is the least number of digits accepted in a phone number.
const MinPhoneDigits = 10

type Rule struct {
	Tag     string
	Message string
}

type Field[T any] struct {
	Name  string
	Value func(T) string
	Rules []Rule
}

type Schema[T any] []Field[T]

// Validator runs schemas. It is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("phone_digits", func(fl validator.FieldLevel) bool {
		return len(utils.OnlyDigits(fl.Field().String())) >= MinPhoneDigits
	})
	return &Validator{v: v}
}

// Check returns one FieldError per field that broke at least one rule, in
// schema order. A nil result means the input is valid.
func Check[T any](v *Validator, schema Schema[T], in T) []models.FieldError {
	var out []models.FieldError
	for _, f := range schema {
		value := f.Value(in)
		var msgs []string
		for _, r := range f.Rules {
			if err := v.v.Var(value, r.Tag); err != nil {
				msgs = append(msgs, r.Message)
			}
		}
		if len(msgs) > 0 {
			out = append(out, models.FieldError{Field: f.Name, Errors: msgs})
		}
	}
	return out
}

var LoginSchema = Schema[models.LoginRequest]{
	{
		Name:  "username",
		Value: func(r models.LoginRequest) string { return r.Username },
		Rules: []Rule{
			{"required", "Username é obrigatório"},
			{"min=4,max=50", "Username deve ter entre 4 e 50 caracteres"},
		},
	},
	{
		Name:  "password",
		Value: func(r models.LoginRequest) string { return r.Password },
		Rules: []Rule{
			{"required", "Password é obrigatório"},
			{"min=4,max=50", "Password deve ter entre 4 e 50 caracteres"},
		},
	},
}

var ClientSchema = Schema[models.ClientInput]{
	{
		Name:  "name",
		Value: func(c models.ClientInput) string { return c.Name },
		Rules: []Rule{
			{"required", "Nome é obrigatório"},
			{"min=4,max=100", "Nome deve ter entre 4 e 100 caracteres"},
		},
	},
	{
		Name:  "email",
		Value: func(c models.ClientInput) string { return c.Email },
		Rules: []Rule{
			{"required", "E-mail é obrigatório"},
			{"email", "E-mail inválido"},
			{"min=10,max=100", "E-mail deve ter entre 10 e 100 caracteres"},
		},
	},
	{
		Name:  "phone",
		Value: func(c models.ClientInput) string { return c.Phone },
		Rules: []Rule{
			{"required", "Telefone é obrigatório"},
			{"phone_digits", "Telefone deve ter pelo menos 10 dígitos"},
			{"max=20", "Telefone deve ter no máximo 20 caracteres"},
		},
	},
	{
		Name:  "address",
		Value: func(c models.ClientInput) string { return c.Address },
		Rules: []Rule{
			{"required", "Endereço é obrigatório"},
			{"min=5,max=500", "Endereço deve ter entre 5 e 500 caracteres"},
		},
	},
}

func (v *Validator) Login(req models.LoginRequest) []models.FieldError {
	return Check(v, LoginSchema, req)
}

func (v *Validator) Client(in models.ClientInput) []models.FieldError {
	return Check(v, ClientSchema, in)
}
