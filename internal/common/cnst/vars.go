package cnst

// Request variables follow the nginx naming convention: http_<lowercased header, dashes as underscores>.
const (
	VarPrefixHTTP    = "http_"
	VarAuthorization = "http_authorization"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderRequestID     = "X-Request-Id"

	ContentTypeJSONUTF8 = "application/json; charset=utf-8"

	// BearerPrefix is matched case-sensitively, with exactly one trailing space
	BearerPrefix = "Bearer "
)

const (
	// PathHealthCheck is the liveness route
	PathHealthCheck = "/health_check"
	// PathVerify is the forward-auth route used by external gateways
	PathVerify = "/auth/verify"
)
