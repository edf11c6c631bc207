package form

// Msg is an input event consumed by Machine.Update.
type Msg interface {
	msg()
}

// Changed reports new text for one input.
type Changed struct {
	Field Field
	Text  string
}

// Submitted requests validation and, when valid, submission.
type Submitted struct{}

// Reset clears every value and message.
type Reset struct{}

func (Changed) msg()   {}
func (Submitted) msg() {}
func (Reset) msg()     {}

// EffectKind classifies the outcome of an update.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectSucceeded
	EffectRejected
	EffectReset
	// EffectIgnored reports a Changed message that left the state untouched:
	// an unknown field, or a phone edit over the digit cap under
	// PhoneOverflowReject.
	EffectIgnored
)

func (k EffectKind) String() string {
	switch k {
	case EffectSucceeded:
		return "succeeded"
	case EffectRejected:
		return "rejected"
	case EffectReset:
		return "reset"
	case EffectIgnored:
		return "ignored"
	default:
		return "none"
	}
}

// Notice is a user-facing notification.
type Notice struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// SuccessNotice is shown after a valid submission.
var SuccessNotice = Notice{
	Title:   "Success",
	Message: "Form submitted successfully.",
}

// Effect describes what the host should surface after an update. Submitted
// carries the values that were accepted when Kind is EffectSucceeded.
type Effect struct {
	Kind      EffectKind
	Notice    Notice
	Submitted Values
}
