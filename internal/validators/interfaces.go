// Package validators checks user input before it reaches the gateway:
// login and registration forms, order drafts, and the create and update
// payloads built from them.
//
// Failures on form fields come back as [FieldErrors] keyed by field name so
// the terminal UI can show them next to the inputs. Order rule violations
// use the sentinel errors from errors.go.
package validators

import "context"

// Validator checks one value. Passing field names limits the check to those
// fields; with none, every rule for the value's type is applied.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
