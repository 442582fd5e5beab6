package gate

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/amoylab/sessiongate/internal/common/cnst"
	"github.com/amoylab/sessiongate/internal/common/dto"
	"github.com/amoylab/sessiongate/internal/common/errorx"
)

// Response buffers what the filter wants the host to send back
type Response interface {
	SetStatus(code int)
	SetHeader(key, value string)
	SetBody(body []byte)
}

// overridable in tests
var marshalEnvelope = json.Marshal

// BuildEnvelope serializes the error envelope stamped with the current time
func BuildEnvelope(code, message string) []byte {
	return buildEnvelope(code, message, time.Now())
}

func buildEnvelope(code, message string, now time.Time) []byte {
	env := dto.ErrorEnvelope{
		Success:   false,
		Code:      code,
		Message:   message,
		Timestamp: now.UnixMilli(),
	}
	body, err := marshalEnvelope(env)
	if err != nil {
		return fmt.Appendf(nil, `{"success":false,"code":%s,"message":%s,"timestamp":%d}`,
			quoteJSON(code), quoteJSON(message), env.Timestamp)
	}
	return body
}

// quoteJSON produces a JSON string literal without going through encoding/json
func quoteJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == '"':
			b.WriteString(`\"`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20, r == utf8.RuneError && size == 1:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// ResponseBuilder renders taxonomy errors onto a Response
type ResponseBuilder struct {
	messages *errorx.ErrorTranslator
	now      func() time.Time
}

// NewResponseBuilder creates a builder using messages for the envelope text
func NewResponseBuilder(messages *errorx.ErrorTranslator) *ResponseBuilder {
	return &ResponseBuilder{messages: messages, now: time.Now}
}

// Write sets the JSON body, content type and status for e. A panic raised by
// resp is returned as an error.
func (b *ResponseBuilder) Write(resp Response, e *errorx.AuthError, cause string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("write %s response: %v", e.Code, r)
		}
	}()

	body := buildEnvelope(e.Code, b.messages.Message(e, cause), b.now())
	resp.SetBody(body)
	resp.SetHeader(cnst.HeaderContentType, cnst.ContentTypeJSONUTF8)
	resp.SetStatus(e.HTTPStatus)
	return nil
}
