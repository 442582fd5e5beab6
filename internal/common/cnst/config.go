package cnst

const (
	// SessionGateYaml is the default configuration file name
	SessionGateYaml = "sessiongate.yaml"
)

const (
	RedisClusterTypeSentinel = "sentinel"
	RedisClusterTypeCluster  = "cluster"
	RedisClusterTypeSingle   = "single"
)

// SessionStoreType represents the backend that holds session records
type SessionStoreType string

const (
	SessionStoreMemory SessionStoreType = "memory"
	SessionStoreRedis  SessionStoreType = "redis"
	SessionStoreDB     SessionStoreType = "db"
)

const (
	// DefaultNamespace matches the token name sessions are written under by the login service
	DefaultNamespace = "satoken"
	// DefaultLoginType is the login type segment of a session key
	DefaultLoginType = "login"
	// DefaultPort is the HTTP port the gate listens on
	DefaultPort = 5236
	// DefaultMetricsPath is where the prometheus handler is mounted
	DefaultMetricsPath = "/metrics"
)
