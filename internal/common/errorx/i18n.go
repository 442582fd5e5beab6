package errorx

import (
	"github.com/amoylab/sessiongate/internal/i18n"
)

// ErrorTranslator renders taxonomy messages in a fixed language
type ErrorTranslator struct {
	translator *i18n.I18n
	lang       string
}

// NewErrorTranslator creates a new error translator
func NewErrorTranslator(translator *i18n.I18n, lang string) *ErrorTranslator {
	return &ErrorTranslator{
		translator: translator,
		lang:       i18n.NormalizeLang(lang),
	}
}

// Message returns the client-facing text for err. For SYS_500 a non-empty
// cause is appended to the message.
func (t *ErrorTranslator) Message(err *AuthError, cause string) string {
	if t == nil || t.translator == nil {
		return err.MessageID
	}
	if err == ErrSystem && cause != "" {
		return t.translator.Translate(MessageIDInternalCause, t.lang, map[string]any{"Cause": cause})
	}
	return t.translator.Translate(err.MessageID, t.lang, nil)
}

// Missing lists the message ids of the taxonomy that have no translation
// in the configured language or the default one
func (t *ErrorTranslator) Missing() []string {
	var missing []string
	for _, e := range All() {
		if t.Message(e, "") == e.MessageID {
			missing = append(missing, e.MessageID)
		}
	}
	if t.Message(ErrSystem, "cause") == MessageIDInternalCause {
		missing = append(missing, MessageIDInternalCause)
	}
	return missing
}

// Lang returns the language messages are rendered in
func (t *ErrorTranslator) Lang() string {
	return t.lang
}
