package model

import (
	"encoding/json"
	"errors"
	"io"
)

// UserIn is the client-supplied portion of a user record. All three
// fields are required; presence is the only validation applied.
type UserIn struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Age      int    `json:"age"`
}

// User is a persisted user record: UserIn plus the store-assigned id.
type User struct {
	ID int `json:"id"`
	UserIn
}

// FieldError describes a single invalid or missing request field. A
// slice of these forms the "detail" of a 422 response body.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// DecodeUserIn reads a UserIn from a JSON request body. A non-empty
// FieldError slice means the body must be rejected with a 422 before
// any handler logic runs.
func DecodeUserIn(r io.Reader) (UserIn, []FieldError) {
	// Pointer fields distinguish "absent" from a zero value.
	var payload struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
		Age      *int    `json:"age"`
	}

	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return UserIn{}, []FieldError{{
				Field: typeErr.Field,
				Error: "invalid type, expected " + typeErr.Type.String(),
			}}
		}
		return UserIn{}, []FieldError{{Field: "body", Error: "invalid JSON body"}}
	}

	var errs []FieldError
	if payload.Username == nil {
		errs = append(errs, FieldError{Field: "username", Error: "field required"})
	}
	if payload.Email == nil {
		errs = append(errs, FieldError{Field: "email", Error: "field required"})
	}
	if payload.Age == nil {
		errs = append(errs, FieldError{Field: "age", Error: "field required"})
	}
	if len(errs) > 0 {
		return UserIn{}, errs
	}

	return UserIn{
		Username: *payload.Username,
		Email:    *payload.Email,
		Age:      *payload.Age,
	}, nil
}
