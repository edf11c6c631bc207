package form

import "github.com/goliatone/go-regform/pkg/validation"

// Values holds the text of each input.
type Values struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// Get returns the value stored for f.
func (v Values) Get(f Field) string {
	switch f {
	case FieldFirstName:
		return v.FirstName
	case FieldLastName:
		return v.LastName
	case FieldEmail:
		return v.Email
	case FieldPhoneNumber:
		return v.PhoneNumber
	}
	return ""
}

// With returns a copy of v with f set to text.
func (v Values) With(f Field, text string) Values {
	switch f {
	case FieldFirstName:
		v.FirstName = text
	case FieldLastName:
		v.LastName = text
	case FieldEmail:
		v.Email = text
	case FieldPhoneNumber:
		v.PhoneNumber = text
	}
	return v
}

// IsZero reports whether every input is empty.
func (v Values) IsZero() bool {
	return v == Values{}
}

func (v Values) input() validation.Input {
	return validation.Input(v)
}

// Errors holds the message shown beneath each input plus the form banner.
// An empty string means no message.
type Errors struct {
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Form        string `json:"form,omitempty"`
}

// Get returns the message for f.
func (e Errors) Get(f Field) string {
	switch f {
	case FieldFirstName:
		return e.FirstName
	case FieldLastName:
		return e.LastName
	case FieldEmail:
		return e.Email
	case FieldPhoneNumber:
		return e.PhoneNumber
	}
	return ""
}

// Clear returns a copy of e without the message for f and without the form
// banner.
func (e Errors) Clear(f Field) Errors {
	switch f {
	case FieldFirstName:
		e.FirstName = ""
	case FieldLastName:
		e.LastName = ""
	case FieldEmail:
		e.Email = ""
	case FieldPhoneNumber:
		e.PhoneNumber = ""
	}
	e.Form = ""
	return e
}

// IsZero reports whether no message is set.
func (e Errors) IsZero() bool {
	return e == Errors{}
}

func errorsFromResult(r validation.Result) Errors {
	return Errors{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
	}
}

// State is the full form state. The zero value is the initial state.
type State struct {
	Values Values `json:"values"`
	Errors Errors `json:"errors"`
}

// IsZero reports whether s equals the initial state.
func (s State) IsZero() bool {
	return s == State{}
}
