package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeFilter(); err != nil {
		return err
	}
	c.normalizeDatasets()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}

	c.Paths.Database = strings.TrimSpace(c.Paths.Database)
	if c.Paths.Database == "" {
		if value, ok := os.LookupEnv(databaseEnv); ok {
			c.Paths.Database = strings.TrimSpace(value)
		}
	}
	if c.Paths.Database == "" {
		c.Paths.Database = filepath.Join(c.Paths.DataDir, defaultDatabase)
	}
	if c.Paths.Database, err = c.ResolveDataPath(c.Paths.Database); err != nil {
		return fmt.Errorf("paths.database: %w", err)
	}

	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.SchemaFile) != "" {
		if c.Paths.SchemaFile, err = c.ResolveDataPath(c.Paths.SchemaFile); err != nil {
			return fmt.Errorf("paths.schema_file: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeFilter() error {
	c.Filter.Field = strings.TrimSpace(c.Filter.Field)
	if c.Filter.Field == "" {
		c.Filter.Field = defaultFilterField
	}
	if strings.TrimSpace(c.Filter.Source) != "" {
		source, err := c.ResolveDataPath(c.Filter.Source)
		if err != nil {
			return fmt.Errorf("filter.source: %w", err)
		}
		c.Filter.Source = source
	}

	// Tags keep their case: matching is exact.
	langs := make([]string, 0, len(c.Filter.AllowedLanguages))
	seen := make(map[string]struct{}, len(c.Filter.AllowedLanguages))
	for _, lang := range c.Filter.AllowedLanguages {
		trimmed := strings.TrimSpace(lang)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		langs = append(langs, trimmed)
	}
	c.Filter.AllowedLanguages = langs
	return nil
}

func (c *Config) normalizeDatasets() {
	for i := range c.Load.Datasets {
		ds := &c.Load.Datasets[i]
		ds.Name = strings.TrimSpace(ds.Name)
		ds.Table = strings.TrimSpace(ds.Table)
		ds.File = strings.TrimSpace(ds.File)
		if ds.Table == "" {
			ds.Table = ds.Name
		}
	}
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch format {
	case "", "text":
		format = defaultLogFormat
	}
	c.Logging.Format = format

	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	switch level {
	case "":
		level = defaultLogLevel
	case "warning":
		level = "warn"
	}
	c.Logging.Level = level
}
