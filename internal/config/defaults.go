package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 4270,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Driver: "badger",
			Badger: BadgerConfig{
				Path: "./data/toolgate",
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
