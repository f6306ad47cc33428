package config

import (
	"time"

	"github.com/spf13/viper"
)

// ServerConfig contains all configuration for the catalog server.
type ServerConfig struct {
	REST            RESTConfig    `mapstructure:"rest"`
	GRPC            GRPCConfig    `mapstructure:"grpc"`
	Logging         LoggingConfig `mapstructure:"logging"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// RESTConfig contains HTTP server configuration for the page and JSON API.
type RESTConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// GRPCConfig contains gRPC server configuration.
type GRPCConfig struct {
	Addr             string        `mapstructure:"addr"`
	EnableReflection bool          `mapstructure:"enable_reflection"`
	KeepaliveMinTime time.Duration `mapstructure:"keepalive_min_time"`
}

// LoadServer loads the server configuration from the given path.
// If configPath is empty, it looks for server.yaml in the config/ directory.
// Environment variables with MRLABS_SERVER_ prefix override config file values.
func LoadServer(configPath string) (*ServerConfig, error) {
	v := viper.New()

	v.SetDefault("rest.addr", ":8080")
	v.SetDefault("rest.read_timeout", 15*time.Second)
	v.SetDefault("rest.write_timeout", 15*time.Second)
	v.SetDefault("rest.idle_timeout", 60*time.Second)
	v.SetDefault("grpc.addr", ":9090")
	v.SetDefault("grpc.enable_reflection", true)
	v.SetDefault("grpc.keepalive_min_time", 30*time.Second)
	v.SetDefault("shutdown_timeout", 30*time.Second)
	setLoggingDefaults(v)

	var cfg ServerConfig
	if err := load(v, configPath, "server", "MRLABS_SERVER", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
