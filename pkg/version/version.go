package version

import (
	_ "embed"
	"strings"
)

// Version is the content of the VERSION file stamped at release time
//
//go:embed VERSION
var Version string

// Dev is reported when VERSION is empty
const Dev = "v0.0.0-dev"

// Get returns the release version without surrounding whitespace
func Get() string {
	if v := strings.TrimSpace(Version); v != "" {
		return v
	}
	return Dev
}
