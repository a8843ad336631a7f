package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"biblioteca/internal/testsupport"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	// validate with the default search path picks up ~/.config/biblioteca
	out, _, err := runCLI(t, []string{"config", "validate"}, "")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Config path: "+env.configPath)
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "[WARN]")

	tmp := t.TempDir()
	target := filepath.Join(tmp, "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, env.configPath)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, env.configPath); err == nil {
		t.Fatal("expected init without --overwrite to refuse an existing file")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, env.configPath); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigInitSkipsBrokenConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, env.configPath, "unknown_key = true\n")

	target := filepath.Join(t.TempDir(), "fresh.toml")
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, env.configPath); err != nil {
		t.Fatalf("config init should not load the broken config: %v", err)
	}
	if _, _, err := runCLI(t, []string{"config", "validate"}, env.configPath); err == nil {
		t.Fatal("expected validate to reject unknown keys")
	}
}

func TestConfigValidateAllDatasetsPresent(t *testing.T) {
	env := setupCLITestEnv(t)
	for _, name := range []string{"books.json", "authors.json", "list.json"} {
		testsupport.WriteLines(t, env.path(name), `{"id":1}`)
	}

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if strings.Contains(out, "[WARN]") || strings.Contains(out, "[ERROR]") {
		t.Fatalf("expected only passing checks:\n%s", out)
	}
	requireContains(t, out, "Dataset authors:")
}

func TestConfigShow(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithAllowedLanguages("es-MX", "spa", "eng"))

	out, _, err := runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, env.cfg.Paths.Database)
	requireContains(t, out, "Spanish (Mexico)")
	requireContains(t, out, "English")
	requireContains(t, out, "(none)")
	requireContains(t, out, filepath.Join(env.baseDir, "list.json"))
}

func TestLogLevelFlagIsValidated(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"--log-level", "loud", "config", "show"}, env.configPath); err == nil {
		t.Fatal("expected unsupported log level to fail")
	}
	if _, _, err := runCLI(t, []string{"--log-level", "debug", "config", "show"}, env.configPath); err != nil {
		t.Fatalf("debug log level: %v", err)
	}
}
