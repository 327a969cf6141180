package validators

import (
	"context"
	"net/mail"

	"github.com/mkhasanov/go-user-guard/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldName targets the display name of an account.
	FieldName = "name"

	// FieldEmail targets the unique login email of an account.
	FieldEmail = "email"

	// FieldPassword targets the plaintext password of an auth request.
	FieldPassword = "password"

	// FieldUserIDs targets the list of account identifiers in batch requests.
	FieldUserIDs = "user_ids"
)

type UserValidator struct {
}

func NewUserValidator() Validator {
	return &UserValidator{}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(ctx, value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(ctx, *value, fields...)

	case models.LoginRequest:
		return v.validateLoginRequest(ctx, value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(ctx, *value, fields...)

	case models.BatchRequest:
		return v.validateBatchRequest(ctx, value, fields...)
	case *models.BatchRequest:
		return v.validateBatchRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateRegisterRequest(_ context.Context, req models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if req.Name == "" {
				return ErrEmptyName
			}
		case FieldEmail:
			if err := validateEmail(req.Email); err != nil {
				return err
			}
		case FieldPassword:
			if req.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateLoginRequest(_ context.Context, req models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if req.Email == "" {
				return ErrEmptyEmail
			}
		case FieldPassword:
			if req.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateBatchRequest(_ context.Context, req models.BatchRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserIDs}
	}

	for _, f := range fields {
		switch f {
		case FieldUserIDs:
			if len(req.UserIDs) == 0 {
				return ErrEmptyIDs
			}
			for _, id := range req.UserIDs {
				if id <= 0 {
					return ErrInvalidUserID
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateEmail requires a bare RFC 5322 address: "Name <a@b>" forms that
// net/mail would accept are rejected because the address doubles as the
// unique login key.
func validateEmail(email string) error {
	if email == "" {
		return ErrEmptyEmail
	}

	parsed, err := mail.ParseAddress(email)
	if err != nil || parsed.Address != email {
		return ErrInvalidEmail
	}

	return nil
}
