package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the form state.
type RenderOptions struct {
	// Action is the URL the form posts to on Submit.
	Action string
	// ResetAction is the URL the Reset button posts to.
	ResetAction string
	// LiveURL points at the WebSocket event endpoint. Renderers that support
	// live validation stream change events there; empty disables it.
	LiveURL string
	// Hidden carries hidden inputs such as the CSRF token.
	Hidden map[string]string
	// Errors surfaces host-side feedback keyed by field path. Keys that do not
	// resolve to a field are shown as form-level errors.
	Errors map[string][]string
	// Theme supplies tokens and asset URLs resolved by go-theme.
	Theme *theme.RendererConfig
	// IntroHTML is shown above the inputs after sanitisation.
	IntroHTML string
}
