package checkout

import (
	"errors"
	"fmt"
	"strings"
)

// State is the checkout progression for a single attempt.
type State int

const (
	// Reviewing: cart visible, lines adjustable.
	Reviewing State = iota
	// CollectingPayment: card + address form shown, submit gated on it.
	CollectingPayment
	// Confirmed: order accepted by the backend; terminal for the attempt.
	Confirmed
)

func (s State) String() string {
	switch s {
	case Reviewing:
		return "reviewing"
	case CollectingPayment:
		return "collecting-payment"
	case Confirmed:
		return "confirmed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Form holds the payment and delivery fields. Presence is the only
// validation: no Luhn check, no expiry parsing, no CVV length check.
// Card data is cosmetic and never leaves the client.
type Form struct {
	CardNumber string
	Expiry     string
	CVV        string
	Address    string
}

// MissingField names the first empty field, or "" when the form is
// complete. Used to tell the user why submit is blocked.
func (f Form) MissingField() string {
	switch {
	case strings.TrimSpace(f.CardNumber) == "":
		return "card number"
	case strings.TrimSpace(f.Expiry) == "":
		return "expiry date"
	case strings.TrimSpace(f.CVV) == "":
		return "CVV"
	case strings.TrimSpace(f.Address) == "":
		return "delivery address"
	}
	return ""
}

// Complete reports whether all four fields are non-empty.
func (f Form) Complete() bool { return f.MissingField() == "" }

// ErrSubmitInFlight is returned when a submission is already running;
// at most one order call may be in flight per flow.
var ErrSubmitInFlight = errors.New("order submission already in flight")

// ValidationError reports an incomplete payment form.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "missing " + e.Field
}

// IsValidation reports whether err is a form-validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Flow drives one checkout attempt through Reviewing →
// CollectingPayment → Confirmed. Failed submissions stay in
// CollectingPayment with the error recorded for display; the original
// UI swallowed those into a console log, which this keeps out loud.
type Flow struct {
	state    State
	inFlight bool
	err      error
}

// NewFlow starts in Reviewing.
func NewFlow() *Flow {
	return &Flow{state: Reviewing}
}

// State returns the current flow state.
func (fl *Flow) State() State { return fl.state }

// InFlight reports whether a submission is awaiting the backend.
func (fl *Flow) InFlight() bool { return fl.inFlight }

// Err returns the last submit error, cleared on the next BeginSubmit.
func (fl *Flow) Err() error { return fl.err }

// BeginPayment moves Reviewing → CollectingPayment. Ignored elsewhere.
func (fl *Flow) BeginPayment() {
	if fl.state == Reviewing {
		fl.state = CollectingPayment
	}
}

// BackToCart returns from the payment form to the cart, unless a
// submission is in flight.
func (fl *Flow) BackToCart() {
	if fl.state == CollectingPayment && !fl.inFlight {
		fl.state = Reviewing
		fl.err = nil
	}
}

// BeginSubmit gates the order call: the flow must be collecting
// payment, the form complete, and no submission already in flight. On
// success the flow is marked in flight; the caller performs the network
// call and reports back via Complete or Fail.
func (fl *Flow) BeginSubmit(f Form) error {
	if fl.state != CollectingPayment {
		return fmt.Errorf("cannot submit while %s", fl.state)
	}
	if fl.inFlight {
		return ErrSubmitInFlight
	}
	if field := f.MissingField(); field != "" {
		err := &ValidationError{Field: field}
		fl.err = err
		return err
	}
	fl.err = nil
	fl.inFlight = true
	return nil
}

// Complete records a successful order call: CollectingPayment →
// Confirmed. The caller clears the cart ledger exactly once on this
// transition.
func (fl *Flow) Complete() {
	fl.inFlight = false
	if fl.state == CollectingPayment {
		fl.state = Confirmed
		fl.err = nil
	}
}

// Fail records a failed order call. The flow stays in
// CollectingPayment and the error is kept for the view to render.
func (fl *Flow) Fail(err error) {
	fl.inFlight = false
	fl.err = err
}

// Reset returns a Confirmed flow to Reviewing for the next attempt.
func (fl *Flow) Reset() {
	fl.state = Reviewing
	fl.inFlight = false
	fl.err = nil
}
