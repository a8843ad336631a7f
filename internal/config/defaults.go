package config

const (
	defaultDatabase    = "biblioteca.db"
	defaultDataDir     = "."
	defaultFilterField = "language"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	databaseEnv        = "BIBLIOTECA_DATABASE"
)

var defaultAllowedLanguages = []string{"es-MX", "spa"}

func defaultDatasets() []Dataset {
	return []Dataset{
		{Name: "books", Table: "books", File: "books.json"},
		{Name: "authors", Table: "authors", File: "authors.json"},
		{Name: "list", Table: "list", File: "list.json"},
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	allowed := make([]string, len(defaultAllowedLanguages))
	copy(allowed, defaultAllowedLanguages)
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Filter: Filter{
			Source:           "books.json",
			Field:            defaultFilterField,
			AllowedLanguages: allowed,
		},
		Load: LoadSection{
			Datasets: defaultDatasets(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
