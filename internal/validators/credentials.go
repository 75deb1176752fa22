package validators

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/MKhiriev/go-order-desk/models"
)

// Form field names reported in FieldErrors.
const (
	FieldName           = "name"
	FieldSurname        = "surname"
	FieldEmail          = "email"
	FieldBirthDate      = "birthdate"
	FieldPassword       = "password"
	FieldRepeatPassword = "repeat_password"
)

// MinPasswordLength is the shortest password accepted on registration.
const MinPasswordLength = 8

// CredentialsValidator checks the login and registration forms. Unlike
// OrderValidator it reports every problem at once as FieldErrors.
type CredentialsValidator struct {
	now func() time.Time
}

// NewCredentialsValidator constructs a new CredentialsValidator and returns
// it as the Validator interface.
func NewCredentialsValidator() Validator {
	return &CredentialsValidator{now: time.Now}
}

func (v *CredentialsValidator) Validate(_ context.Context, obj any, fields ...string) error {
	var errs FieldErrors

	switch value := obj.(type) {
	case models.LoginForm:
		errs = v.validateLogin(value, fields...)
	case *models.LoginForm:
		errs = v.validateLogin(*value, fields...)

	case models.RegisterForm:
		errs = v.validateRegister(value, fields...)
	case *models.RegisterForm:
		errs = v.validateRegister(*value, fields...)

	default:
		return ErrUnsupportedType
	}

	if _, unknown := errs[""]; unknown {
		return ErrUnknownField
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *CredentialsValidator) validateLogin(form models.LoginForm, fields ...string) FieldErrors {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	errs := FieldErrors{}
	for _, f := range fields {
		switch f {
		case FieldEmail:
			if msg := checkEmail(form.Email); msg != "" {
				errs[FieldEmail] = msg
			}
		case FieldPassword:
			if form.Password == "" {
				errs[FieldPassword] = "Password is required"
			}
		default:
			errs[""] = f
		}
	}
	return errs
}

func (v *CredentialsValidator) validateRegister(form models.RegisterForm, fields ...string) FieldErrors {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldSurname, FieldEmail, FieldBirthDate, FieldPassword, FieldRepeatPassword}
	}

	errs := FieldErrors{}
	for _, f := range fields {
		switch f {
		case FieldName:
			if strings.TrimSpace(form.Name) == "" {
				errs[FieldName] = "Name is required"
			}
		case FieldSurname:
			if strings.TrimSpace(form.Surname) == "" {
				errs[FieldSurname] = "Surname is required"
			}
		case FieldEmail:
			if msg := checkEmail(form.Email); msg != "" {
				errs[FieldEmail] = msg
			}
		case FieldBirthDate:
			if msg := v.checkBirthDate(form.BirthDate); msg != "" {
				errs[FieldBirthDate] = msg
			}
		case FieldPassword:
			switch {
			case form.Password == "":
				errs[FieldPassword] = "Password is required"
			case len([]rune(form.Password)) < MinPasswordLength:
				errs[FieldPassword] = "Password must be at least 8 characters"
			}
		case FieldRepeatPassword:
			if form.RepeatPassword != form.Password {
				errs[FieldRepeatPassword] = "Passwords do not match"
			}
		default:
			errs[""] = f
		}
	}
	return errs
}

func checkEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "Email is required"
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@"):], ".") {
		return "Email is invalid"
	}
	return ""
}

func (v *CredentialsValidator) checkBirthDate(value string) string {
	if value == "" {
		return "Birth date is required"
	}
	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return "Birth date must be in YYYY-MM-DD format"
	}
	if date.After(v.now()) {
		return "Birth date cannot be in the future"
	}
	return ""
}
