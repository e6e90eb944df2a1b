// Package validation holds the input rules shared by the password reset forms.
package validation

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is the minimum number of characters a new password needs.
const MinPasswordLength = 8

// Field names as they appear in the HTML forms.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

const (
	MsgInvalidEmail     = "Invalid email address. Please enter a valid email."
	MsgPasswordTooShort = "Password must be at least 8 characters long."
	MsgPasswordMismatch = "Passwords do not match. Please ensure both passwords are identical."
)

// EmailRequestInput is the forgot-password form.
type EmailRequestInput struct {
	Email string `form:"email" validate:"required,email"`
}

// PasswordResetInput is the reset-password form. The match between the two
// fields is checked at struct level so the error lands on ConfirmPassword.
type PasswordResetInput struct {
	Password        string `form:"password" validate:"min=8"`
	ConfirmPassword string `form:"confirmPassword"`
}

// messages maps "<field>.<tag>" to the text shown next to the field.
var messages = map[string]string{
	FieldEmail + ".required":          MsgInvalidEmail,
	FieldEmail + ".email":             MsgInvalidEmail,
	FieldPassword + ".min":            MsgPasswordTooShort,
	FieldConfirmPassword + ".eqfield": MsgPasswordMismatch,
}

// FieldErrors maps a form field name to its error message.
type FieldErrors map[string]string

// Error joins the messages in field order so the output is stable.
func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fe[f])
	}
	return strings.Join(parts, "; ")
}

// Has reports whether field carries an error.
func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

// Rules wraps a configured validator. It is safe for concurrent use.
type Rules struct {
	validate *validator.Validate
}

// New builds the rule set.
func New() *Rules {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(passwordsMatch, PasswordResetInput{})
	return &Rules{validate: v}
}

// passwordsMatch only compares the two fields once the password itself is
// long enough, so a short password reports a single error.
func passwordsMatch(sl validator.StructLevel) {
	in := sl.Current().Interface().(PasswordResetInput)
	if utf8.RuneCountInString(in.Password) < MinPasswordLength {
		return
	}
	if in.Password != in.ConfirmPassword {
		sl.ReportError(in.ConfirmPassword, FieldConfirmPassword, "ConfirmPassword", "eqfield", FieldPassword)
	}
}

// Check validates input and returns nil when every rule passes.
func (r *Rules) Check(input any) FieldErrors {
	err := r.validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only reachable when input is not a struct.
		return FieldErrors{"": err.Error()}
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

// Validate implements echo.Validator.
func (r *Rules) Validate(i interface{}) error {
	if errs := r.Check(i); errs != nil {
		return errs
	}
	return nil
}

func message(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fe.Field() + " is invalid"
}
