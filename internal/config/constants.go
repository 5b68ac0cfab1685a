package config

import "time"

const (
	envPort         = "PORT"
	envDBPath       = "DB_PATH"
	envDBSeed       = "DB_SEED"
	envGraphiQL     = "GRAPHIQL_ENABLED"
	envLogLevel     = "LOG_LEVEL"
	envLogFormat    = "LOG_FORMAT"
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"
	envOtelInterval = "OTEL_EXPORT_INTERVAL"

	defaultPort        = "4000"
	defaultDBPath      = "data/baseball.db"
	defaultDBSeed      = true
	defaultGraphiQL    = true
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
	defaultMetricsPort = "9090"
	defaultServiceName = "baseball-graph-service"
	// OTLP push cadence; the prometheus endpoint is scrape-based and unaffected.
	defaultOtelInterval = 15 * Duration(time.Second)
)
