// Package validation holds the registration field rules. Every rule maps the
// raw field text to an empty string when it is valid or to the message shown
// beneath the input when it is not.
//
// The phone number rule and the aggregate form message are selected through a
// Policy so hosts can run either of the two screen behaviours that exist in
// the wild without forking the rules.
package validation
