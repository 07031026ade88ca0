package httpapi

import (
	"errors"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Password length is counted in bytes: bcrypt ignores anything past 72.
func (r signupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("Enter a valid Email"),
			is.EmailFormat.Error("Enter a valid Email")),
		validation.Field(&r.Password,
			validation.Required.Error("Password must be between 6 and 72 characters"),
			validation.Length(6, 72).Error("Password must be between 6 and 72 characters")),
		validation.Field(&r.Name,
			validation.Required.Error("Name cannot be empty")),
	)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("Enter a valid Email"),
			is.EmailFormat.Error("Enter a valid Email")),
		validation.Field(&r.Password,
			validation.Required.Error("Password should be at least 6 characters"),
			validation.Length(6, 0).Error("Password should be at least 6 characters")),
	)
}

const (
	msgTitleLength = "Title cannot be empty or greater than 15 characters"
	msgBodyLength  = "Body cannot be empty or greater than 50 characters"
)

type createNoteRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (r createNoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error(msgTitleLength), validation.RuneLength(1, 15).Error(msgTitleLength)),
		validation.Field(&r.Body, validation.Required.Error(msgBodyLength), validation.RuneLength(1, 50).Error(msgBodyLength)),
	)
}

// updateNoteRequest fields are optional; an absent or empty value keeps the
// stored one.
type updateNoteRequest struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

func (r updateNoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.RuneLength(1, 15).Error(msgTitleLength)),
		validation.Field(&r.Body, validation.RuneLength(1, 50).Error(msgBodyLength)),
	)
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

type fieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// fieldErrors flattens ozzo validation errors into a stable, field-sorted
// list. ok is false when err is not a validation error.
func fieldErrors(err error) ([]fieldError, bool) {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	out := make([]fieldError, 0, len(verrs))
	for field, ferr := range verrs {
		out = append(out, fieldError{Field: field, Msg: ferr.Error()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out, true
}
