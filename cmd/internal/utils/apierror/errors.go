package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

type StructuredError struct {
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

var (
	MalformedBodyError    = NewSimple(http.StatusBadRequest, "Malformed JSON body")
	InvalidMediaTypeError = NewSimple(http.StatusUnsupportedMediaType, "Unsupported media type")
	InternalServerError   = NewSimple(http.StatusInternalServerError, "Internal server error")

	NotFoundError = NewSimple(http.StatusNotFound, "Resource not found")

	/*
	 * Identity checks, mirrors of the generated resource rules
	 */
	IDNullError    = NewSimple(http.StatusBadRequest, "Invalid id: the body has no id")
	IDInvalidError = NewSimple(http.StatusBadRequest, "Invalid id: path and body ids differ")

	/*
	 * Used for authentication
	 */
	UnauthorizedError     = NewSimple(http.StatusUnauthorized, "Authentication required")
	InvalidAuthTokenError = NewSimple(http.StatusUnauthorized, "Invalid or expired access token")
)

func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	problems := map[string][]string{}
	for _, fe := range ve {
		field := fe.Field()

		switch fe.Tag() {
		case "required":
			problems[field] = append(problems[field], "This field is required")
		case "min":
			problems[field] = append(problems[field], "Value is too short, min: "+fe.Param())
		case "max":
			problems[field] = append(problems[field], "Value is too long, max: "+fe.Param())

		default:
			problems[field] = append(problems[field], "Invalid value provided")
		}
	}

	return &StructuredError{
		Errors: problems,
		Status: http.StatusBadRequest,
	}
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Errors: make(map[string][]string),
		Status: code,
	}
}

func NewIDExistsError(entityName string) *APIError {
	return NewSimple(http.StatusBadRequest, "A new %s cannot already have an id", entityName)
}

func NewIDNotFoundError(entityName string, id int64) *APIError {
	return NewSimple(http.StatusBadRequest, "Cannot update %s %d: entity not found", entityName, id)
}

func NewUnknownTagsError(ids []int64) *StructuredError {
	serr := NewStructured(http.StatusBadRequest)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	serr.Add("tags", "Unknown tag ids: "+strings.Join(parts, ", "))
	return serr
}

func NewInvalidParamTypeError(name, dataType string) *APIError {
	return NewSimple(http.StatusBadRequest, "Parameter '%s' has invalid type, expected: %s", name, dataType)
}

func NewInvalidParamError(name string, reason error) *APIError {
	return NewSimple(http.StatusBadRequest, "Parameter '%s' is invalid: %v", name, reason)
}
