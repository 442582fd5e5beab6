package cnst

import "errors"

var (
	// ErrInvalidPort is returned when the configured port is out of range
	ErrInvalidPort = errors.New("port must be between 1 and 65535")
	// ErrEmptyNamespace is returned when the session key namespace is empty
	ErrEmptyNamespace = errors.New("auth namespace cannot be empty")
	// ErrEmptyLoginType is returned when the session key login type is empty
	ErrEmptyLoginType = errors.New("auth login type cannot be empty")
	// ErrNilStore is returned when the gate is built without a session store
	ErrNilStore = errors.New("session store cannot be nil")
	// ErrUnsupportedStore is returned for an unknown session store type
	ErrUnsupportedStore = errors.New("unsupported session store type")
	// ErrMissingRedisAddr is returned when the redis store has no address
	ErrMissingRedisAddr = errors.New("redis addr is required for redis session store")
	// ErrMissingMemoryFile is returned when the memory store has no seed file
	ErrMissingMemoryFile = errors.New("memory file is required for memory session store")
	// ErrMissingDSN is returned when the db store has no dsn
	ErrMissingDSN = errors.New("database dsn is required for db session store")
	// ErrInvalidUpstream is returned when the upstream url cannot be parsed
	ErrInvalidUpstream = errors.New("upstream url must be an absolute http(s) url")
)
