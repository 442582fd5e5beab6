package gate

import (
	"strings"

	"github.com/amoylab/sessiongate/internal/common/cnst"
)

// bearerScheme is BearerPrefix after the header value has been trimmed
var bearerScheme = strings.TrimSpace(cnst.BearerPrefix)

// ParseBearer strips the case-sensitive "Bearer " prefix from raw.
// It returns BadFormat for any other prefix and EmptyToken when nothing but
// whitespace follows the prefix.
func ParseBearer(raw string) (string, Outcome) {
	// a trimmed "Bearer   " arrives here as the bare scheme
	if raw == bearerScheme {
		return "", EmptyToken
	}
	if !strings.HasPrefix(raw, cnst.BearerPrefix) {
		return "", BadFormat
	}
	token := strings.TrimSpace(raw[len(cnst.BearerPrefix):])
	if token == "" {
		return "", EmptyToken
	}
	return token, Success
}
