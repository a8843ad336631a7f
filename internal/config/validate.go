package config

import (
	"errors"
	"fmt"
	"regexp"

	"biblioteca/internal/language"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFilter(); err != nil {
		return err
	}
	if err := c.validateDatasets(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateFilter() error {
	if len(c.Filter.AllowedLanguages) == 0 {
		return errors.New("filter.allowed_languages must list at least one language tag")
	}
	for _, tag := range c.Filter.AllowedLanguages {
		if err := language.Validate(tag); err != nil {
			return fmt.Errorf("filter.allowed_languages: %w", err)
		}
	}
	return nil
}

func (c *Config) validateDatasets() error {
	seen := make(map[string]struct{}, len(c.Load.Datasets))
	for i, ds := range c.Load.Datasets {
		if ds.Name == "" {
			return fmt.Errorf("load.datasets[%d].name must be set", i)
		}
		if _, dup := seen[ds.Name]; dup {
			return fmt.Errorf("load.datasets: duplicate name %q", ds.Name)
		}
		seen[ds.Name] = struct{}{}
		if !identifierPattern.MatchString(ds.Table) {
			return fmt.Errorf("load.datasets[%d].table %q must match %s", i, ds.Table, identifierPattern.String())
		}
		if ds.File == "" {
			return fmt.Errorf("load.datasets[%d].file must be set", i)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
