package config

import (
	"time"

	"github.com/spf13/viper"
)

// ClientConfig contains configuration for the mrlabs command line client.
type ClientConfig struct {
	Server  ServerConnConfig `mapstructure:"server"`
	Logging LoggingConfig    `mapstructure:"logging"`
}

// ServerConnConfig contains catalog server connection configuration.
type ServerConnConfig struct {
	Addr string           `mapstructure:"addr"`
	GRPC ClientGRPCConfig `mapstructure:"grpc"`
}

// ClientGRPCConfig contains gRPC client configuration.
type ClientGRPCConfig struct {
	KeepaliveTime    time.Duration `mapstructure:"keepalive_time"`
	KeepaliveTimeout time.Duration `mapstructure:"keepalive_timeout"`
	CallTimeout      time.Duration `mapstructure:"call_timeout"`
}

// LoadClient loads the client configuration from the given path.
// An empty server address means the embedded catalog is used.
// Environment variables with MRLABS_CLIENT_ prefix override config file values.
func LoadClient(configPath string) (*ClientConfig, error) {
	v := viper.New()

	v.SetDefault("server.addr", "")
	v.SetDefault("server.grpc.keepalive_time", 30*time.Second)
	v.SetDefault("server.grpc.keepalive_timeout", 5*time.Second)
	v.SetDefault("server.grpc.call_timeout", 10*time.Second)
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")

	var cfg ClientConfig
	if err := load(v, configPath, "client", "MRLABS_CLIENT", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
