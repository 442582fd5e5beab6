package gate

import (
	"strings"

	"github.com/amoylab/sessiongate/internal/common/cnst"
)

// Request exposes the variables the host resolved for the current request
type Request interface {
	// Var returns the named variable, e.g. http_authorization
	Var(name string) (string, bool)
}

// ExtractAuthorization returns the trimmed Authorization value. Absent and
// blank values both report false.
func ExtractAuthorization(req Request) (string, bool) {
	if req == nil {
		return "", false
	}
	raw, ok := req.Var(cnst.VarAuthorization)
	if !ok {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	return raw, true
}
