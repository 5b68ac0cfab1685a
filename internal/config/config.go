package config

// Config holds runtime configuration for the server.
type Config struct {
	Port    string
	DB      DBConfig
	GraphQL GraphQLConfig
	Log     LogConfig
	Metrics MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:    envOrDefault(envPort, defaultPort),
		DB:      loadDB(),
		GraphQL: loadGraphQL(),
		Log:     loadLog(),
		Metrics: loadMetrics(),
	}
}
