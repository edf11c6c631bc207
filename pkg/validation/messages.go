package validation

// Messages shown beneath the inputs and in the form banner.
const (
	MsgFirstNameRequired = "First name is required."
	MsgLastNameRequired  = "Last name is required."
	MsgEmailRequired     = "Email is required."
	MsgEmailInvalid      = "Invalid email format."

	// exact10 rule
	MsgPhoneRequired = "Phone Number is required."
	MsgPhoneExactTen = "Phone Number must be exactly 10 digits."

	// upto10 rule
	MsgPhoneRequiredLower = "Phone number is required."
	MsgPhoneInvalidFormat = "Invalid phone number format. Use up to 10 digits."

	MsgFormGeneric = "Please fill in the required fields correctly."
)
