package cnst

const (
	// AppName is the name of the application
	AppName = "sessiongate"
	// CommandName is the name of the CLI binary
	CommandName = "sessiongate"
	// DefaultFilterName is the filter name the gateway routes address
	DefaultFilterName = "SessionAuthFilter"
)
