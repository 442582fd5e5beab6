package gate

import "github.com/amoylab/sessiongate/internal/common/errorx"

// Outcome is the terminal result of one authentication decision
type Outcome int

const (
	Success Outcome = iota
	MissingHeader
	BadFormat
	EmptyToken
	InvalidOrExpired
	SystemError
)

// CodeOK labels a successful decision in metrics and traces
const CodeOK = "OK"

var outcomeNames = map[Outcome]string{
	Success:          "success",
	MissingHeader:    "missing_header",
	BadFormat:        "bad_format",
	EmptyToken:       "empty_token",
	InvalidOrExpired: "invalid_or_expired",
	SystemError:      "system_error",
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return "unknown"
}

// AuthError maps the outcome onto the error taxonomy. Success maps to nil.
func (o Outcome) AuthError() *errorx.AuthError {
	switch o {
	case Success:
		return nil
	case MissingHeader:
		return errorx.ErrMissingToken
	case BadFormat:
		return errorx.ErrInvalidFormat
	case EmptyToken:
		return errorx.ErrEmptyToken
	case InvalidOrExpired:
		return errorx.ErrTokenExpired
	default:
		return errorx.ErrSystem
	}
}

// Code returns the envelope code, or CodeOK for Success
func (o Outcome) Code() string {
	if e := o.AuthError(); e != nil {
		return e.Code
	}
	return CodeOK
}
