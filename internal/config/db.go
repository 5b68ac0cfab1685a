package config

// DBConfig controls the SQLite database location and bootstrap behavior.
type DBConfig struct {
	Path string // database file path; ":memory:" runs fully in-process
	Seed bool   // insert the sample roster when the database is empty
}

func loadDB() DBConfig {
	return DBConfig{
		Path: envOrDefault(envDBPath, defaultDBPath),
		Seed: boolEnvOrDefault(envDBSeed, defaultDBSeed),
	}
}
