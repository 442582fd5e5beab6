package config

import (
	"time"

	"github.com/amoylab/sessiongate/internal/common/cnst"
)

type (
	// SessionConfig selects and configures the session store
	SessionConfig struct {
		Type     cnst.SessionStoreType `yaml:"type"` // memory, redis or db
		Memory   SessionMemoryConfig   `yaml:"memory"`
		Redis    SessionRedisConfig    `yaml:"redis"`
		Database DatabaseConfig        `yaml:"database"`
	}

	// SessionMemoryConfig points at a YAML file of fixed sessions, for local
	// runs against a gateway without a shared store
	SessionMemoryConfig struct {
		File string `yaml:"file"`
	}

	// SessionRedisConfig represents the Redis configuration for session lookups
	SessionRedisConfig struct {
		ClusterType string        `yaml:"cluster_type"` // single, sentinel or cluster
		Addr        string        `yaml:"addr"`         // multiple addresses separated by ; or ,
		MasterName  string        `yaml:"master_name"`  // sentinel only
		Username    string        `yaml:"username"`
		Password    string        `yaml:"password"`
		DB          int           `yaml:"db"` // ignored in cluster mode
		DialTimeout time.Duration `yaml:"dial_timeout"`
		ReadTimeout time.Duration `yaml:"read_timeout"`
		PoolSize    int           `yaml:"pool_size"`
	}

	// DatabaseConfig represents a SQL session table
	DatabaseConfig struct {
		Type  string `yaml:"type"` // postgres, mysql or sqlite
		DSN   string `yaml:"dsn"`
		Table string `yaml:"table"`
	}
)
