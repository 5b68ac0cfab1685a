package config

// GraphQLConfig controls the query endpoint surface.
type GraphQLConfig struct {
	GraphiQL bool // serve the GraphiQL UI on GET /graphql
}

func loadGraphQL() GraphQLConfig {
	return GraphQLConfig{
		GraphiQL: boolEnvOrDefault(envGraphiQL, defaultGraphiQL),
	}
}
