package recur

import "fmt"

// ErrorKind classifies a recur.Error, mirroring the four error kinds the
// engine can surface: a spec string that doesn't match the grammar, a spec
// that parses but whose axis combination isn't supported, an advance that
// failed to produce a strictly increasing result, and precondition
// failures such as an end before a start.
type ErrorKind int

const (
	ErrParse ErrorKind = iota
	ErrInvalidSpec
	ErrNextDateCalc
	ErrCustom
)

func (k ErrorKind) String() string {
	switch k {
	case ErrParse:
		return "ParseError"
	case ErrInvalidSpec:
		return "InvalidSpec"
	case ErrNextDateCalc:
		return "NextDateCalcError"
	default:
		return "Custom"
	}
}

// Error is the typed error returned by every exported recur function. It
// embeds the kind so callers can branch with errors.Is/errors.As instead of
// string-matching a message.
type Error struct {
	Kind   ErrorKind
	Reason string
	cause  error
}

// NewParseError builds an ErrParse-kind Error for a spec string that does
// not match the grammar.
func NewParseError(reason string) *Error { return &Error{Kind: ErrParse, Reason: reason} }

// NewInvalidSpecError builds an ErrInvalidSpec-kind Error for a spec that
// parses but combines axes in an unsupported way.
func NewInvalidSpecError(reason string) *Error { return &Error{Kind: ErrInvalidSpec, Reason: reason} }

// NewNextDateCalcError builds an ErrNextDateCalc-kind Error for an advance
// step that failed to produce a date strictly after the cursor.
func NewNextDateCalcError(reason string) *Error { return &Error{Kind: ErrNextDateCalc, Reason: reason} }

// NewCustomError builds an ErrCustom-kind Error for precondition failures.
func NewCustomError(message string) *Error { return &Error{Kind: ErrCustom, Reason: message} }

// wrap attaches an upstream error (e.g. from an Oracle) as the cause while
// keeping the recur-level kind and reason.
func (e *Error) wrap(cause error) *Error {
	e.cause = cause
	return e
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("recur: %s: %s: %v", e.Kind, e.Reason, e.cause)
	}
	return fmt.Sprintf("recur: %s: %s", e.Kind, e.Reason)
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is an *Error of the same Kind, supporting
// errors.Is(err, recur.NewParseError("")) style checks regardless of the
// Reason text.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}
