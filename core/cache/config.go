package cache

// Config holds configuration for the redis backed cache.
type Config struct {
	// Addr is the redis host:port. Empty selects the in-process cache.
	Addr string `mapstructure:"addr" default:""`
	// Password is the redis password.
	Password string `mapstructure:"password" default:""`
	// DB is the redis database index.
	DB int `mapstructure:"db" default:"0"`
}
