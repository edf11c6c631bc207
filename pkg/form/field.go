package form

import (
	"errors"
	"fmt"
	"strings"
)

// Field identifies one of the registration inputs.
type Field string

const (
	FieldFirstName   Field = "firstName"
	FieldLastName    Field = "lastName"
	FieldEmail       Field = "email"
	FieldPhoneNumber Field = "phoneNumber"
)

// ErrUnknownField is returned when a field name cannot be resolved.
var ErrUnknownField = errors.New("form: unknown field")

// Fields returns the inputs in display order.
func Fields() []Field {
	return []Field{FieldFirstName, FieldLastName, FieldEmail, FieldPhoneNumber}
}

// Valid reports whether f names one of the four inputs.
func (f Field) Valid() bool {
	switch f {
	case FieldFirstName, FieldLastName, FieldEmail, FieldPhoneNumber:
		return true
	}
	return false
}

func (f Field) String() string {
	return string(f)
}

// ParseField resolves camelCase, snake_case and kebab-case spellings of a
// field name.
func ParseField(name string) (Field, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)
	switch key {
	case "firstname":
		return FieldFirstName, nil
	case "lastname":
		return FieldLastName, nil
	case "email":
		return FieldEmail, nil
	case "phonenumber", "phone":
		return FieldPhoneNumber, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}
