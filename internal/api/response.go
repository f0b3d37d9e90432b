// Package api defines the JSON bodies shared by every HTTP handler.
package api

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ErrorResponse is the body returned for every 4xx/5xx that carries an "error" key.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

// FieldError describes one field that failed validation. It doubles as an
// error so decoders and parsers can report a precise field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return e.Field + " " + e.Reason
}

// MessageResponse is used for descriptive, non-error messages such as 404s.
type MessageResponse struct {
	Message string `json:"message"`
}

// Generic bodies. Unauthorized deliberately carries no detail.
var (
	Unauthorized    = ErrorResponse{Error: "Unauthorized"}
	InternalError   = ErrorResponse{Error: "internal server error"}
	TooManyRequests = ErrorResponse{Error: "too many requests"}
)

// ValidationError converts a binding error into a 400 body.
// validator.ValidationErrors are expanded per field; anything else (malformed
// JSON, wrong types) is reported as a single body-level failure.
func ValidationError(err error) ErrorResponse {
	resp := ErrorResponse{Error: "invalid request"}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			resp.Details = append(resp.Details, FieldError{
				Field:  lowerFirst(fe.Field()),
				Reason: reason(fe),
			})
		}
		return resp
	}

	var fe FieldError
	if errors.As(err, &fe) {
		resp.Details = []FieldError{fe}
		return resp
	}

	resp.Details = []FieldError{{Field: "body", Reason: err.Error()}}
	return resp
}

// ParseUUID parses s as a UUID in its canonical 36-character form, in either
// letter case. Braced and urn: forms are rejected.
func ParseUUID(field, s string) (uuid.UUID, error) {
	invalid := FieldError{Field: field, Reason: "must be a valid UUID"}
	if len(s) != 36 {
		return uuid.Nil, invalid
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, invalid
	}
	return id, nil
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid UUID"
	default:
		return "failed on the '" + fe.Tag() + "' rule"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	// acronyms such as "ID"
	if strings.ToUpper(s) == s {
		return strings.ToLower(s)
	}
	return strings.ToLower(s[:1]) + s[1:]
}
