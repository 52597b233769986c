package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/yacobolo/cssbundle"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".cssbundle.yaml"
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set,
	// which is what posflag does when it gets no koanf instance)
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", nil), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 0. .env next to the config file feeds the environment (never overrides it)
	if err := loadDotEnv(filepath.Join(filepath.Dir(configPath), ".env")); err != nil {
		return err
	}

	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (CSSBUNDLE_* prefix)
	if err := k.Load(env.Provider("CSSBUNDLE_", ".", func(s string) string {
		// CSSBUNDLE_BUILD_SOURCE -> build.source
		// CSSBUNDLE_WATCHER_DIRS -> watcher.dirs
		// CSSBUNDLE_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "CSSBUNDLE_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// loadDotEnv loads a .env file into the process environment if it exists
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// buildConfig constructs the library's Config struct from koanf state.
func buildConfig() cssbundle.Config {
	defaults := cssbundle.DefaultConfig()

	config := cssbundle.Config{
		SourceDir:    getStringWithFallback("source", "build.source", defaults.SourceDir),
		Entry:        getStringWithFallback("entry", "build.entry", defaults.Entry),
		OutputDir:    getStringWithFallback("out-dir", "build.dist", defaults.OutputDir),
		BundleName:   getStringWithFallback("bundle-name", "build.bundle", defaults.BundleName),
		MinifiedName: getStringWithFallback("minified-name", "build.minified", defaults.MinifiedName),
		Verbose:      getBoolWithFallback("verbose", "verbose", false),
		Quiet:        getBoolWithFallback("quiet", "quiet", false),
		UseColors:    getBoolWithFallback("color", "color", false),
		WatchDirs:    getStringsWithFallback("watcher.dirs", defaults.WatchDirs),
		WatchInclude: getStringsWithFallback("watcher.include", defaults.WatchInclude),
		WatchIgnore:  getStringsWithFallback("watcher.ignore", defaults.WatchIgnore),
	}

	return config
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getStringsWithFallback reads a list from the config key. A single
// comma-separated string (as set from the environment) is split.
func getStringsWithFallback(configKey string, defaultVal []string) []string {
	if !k.Exists(configKey) {
		return defaultVal
	}

	if v, ok := k.Get(configKey).(string); ok {
		return splitList(v)
	}
	if v := k.Strings(configKey); len(v) > 0 {
		return v
	}
	return defaultVal
}

// splitList splits comma-separated values into a slice
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
