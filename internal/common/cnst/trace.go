package cnst

// Tracer names used across the services
const (
	// TraceGate is the tracer name for the authentication pipeline
	TraceGate = "sessiongate/gate"
	// TraceSession is the tracer name for session store lookups
	TraceSession = "sessiongate/session"
)

// Common span names
const (
	SpanFilter        = "gate.filter"
	SpanSessionLookup = "session.lookup"
)

// Common attribute keys
const (
	AttrFilterName     = "gate.filter_name"
	AttrOutcome        = "gate.outcome"
	AttrErrorCode      = "gate.error_code"
	AttrMaskedToken    = "gate.token_masked"
	AttrStoreType      = "session.store_type"
	AttrSessionFound   = "session.found"
	AttrErrorReason    = "error.reason"
	AttrClientAddr     = "client.remote_addr"
	AttrHTTPStatusCode = "http.status_code"
)
