package domain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// User-facing validation messages.
const (
	MsgNameRequired    = "Nombre requerido."
	MsgAliasRequired   = "Alias requerido."
	MsgChannelRequired = "Link del canal requerido."
	MsgEmailInvalid    = "Correo inválido."
)

// FieldError represents a single field's validation error.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"message"`
}

func (e FieldError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Msg) }

var validate = validator.New()

// checks lists the validated struct fields in display order.
var checks = []struct {
	structField string
	err         FieldError
}{
	{"Name", FieldError{KeyName, MsgNameRequired}},
	{"Alias", FieldError{KeyAlias, MsgAliasRequired}},
	{"Channel", FieldError{KeyChannel, MsgChannelRequired}},
	{"Email", FieldError{KeyEmail, MsgEmailInvalid}},
}

// ValidateRecord checks required fields and the email format.
// Errors are returned in a fixed order: name, alias, channel, email.
func ValidateRecord(rec *Record) []FieldError {
	err := validate.Struct(rec)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "record", Msg: err.Error()}}
	}

	failed := make(map[string]struct{}, len(verrs))
	for _, fe := range verrs {
		failed[fe.StructField()] = struct{}{}
	}
	var errs []FieldError
	for _, c := range checks {
		if _, ok := failed[c.structField]; ok {
			errs = append(errs, c.err)
		}
	}
	return errs
}

// Messages flattens errs into their display strings.
func Messages(errs []FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, fe := range errs {
		out = append(out, fe.Msg)
	}
	return out
}
