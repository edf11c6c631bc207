package validation

// Input carries the raw field text to validate.
type Input struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
}

// Result holds one message per field; "" means the field passed.
type Result struct {
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// Issue pairs a field name with its validation message.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Valid reports whether every field passed.
func (r Result) Valid() bool {
	return r.FirstName == "" && r.LastName == "" && r.Email == "" && r.PhoneNumber == ""
}

// Issues lists the failing fields in display order.
func (r Result) Issues() []Issue {
	all := []Issue{
		{Field: "firstName", Message: r.FirstName},
		{Field: "lastName", Message: r.LastName},
		{Field: "email", Message: r.Email},
		{Field: "phoneNumber", Message: r.PhoneNumber},
	}
	out := make([]Issue, 0, len(all))
	for _, issue := range all {
		if issue.Message != "" {
			out = append(out, issue)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// priority orders fields for the aggregate message: the phone number is
// reported before the name and email fields.
func (r Result) priority() []Issue {
	return []Issue{
		{Field: "phoneNumber", Message: r.PhoneNumber},
		{Field: "firstName", Message: r.FirstName},
		{Field: "lastName", Message: r.LastName},
		{Field: "email", Message: r.Email},
	}
}
