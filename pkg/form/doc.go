// Package form implements the registration form state machine.
//
// State is a plain value. Machine.Update applies one Msg to a State and
// returns the next State plus an Effect describing what the host should
// surface (nothing, a rejected submit, a reset, or the success notice).
// Controller wraps a Machine and the current State for hosts that keep one
// form alive across events, such as the terminal session and the HTTP
// server.
package form
