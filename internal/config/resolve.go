package config

import (
	"fmt"
	"strconv"
)

// ConfigSource identifies where a configuration value came from.
type ConfigSource string

const (
	// SourceDefault indicates the value came from built-in defaults.
	SourceDefault ConfigSource = "default"
	// SourceFile indicates the value came from the wyclef.toml config file.
	SourceFile ConfigSource = "file"
	// SourceEnv indicates the value came from an environment variable.
	SourceEnv ConfigSource = "env"
	// SourceCLI indicates the value came from a CLI flag.
	SourceCLI ConfigSource = "cli"
)

// Environment variables consulted by Resolve.
const (
	EnvTickRate      = "WYCLEF_TICK_RATE"
	EnvPageStep      = "WYCLEF_PAGE_STEP"
	EnvSkipMalformed = "WYCLEF_SKIP_MALFORMED"
	EnvLogFile       = "WYCLEF_LOG_FILE"
)

// ResolvedConfig holds the fully-resolved configuration with source tracking.
type ResolvedConfig struct {
	Config  *Config
	Sources map[string]ConfigSource // key is dotted path, e.g., "viewer.tick_rate"
	Path    string                  // path to the config file used (empty if none)

	// Ignored lists environment values that could not be parsed and were
	// skipped, formatted as "NAME=value: reason".
	Ignored []string
}

// CLIOverrides captures flag values that can override configuration.
// A nil field means "not set on the command line".
type CLIOverrides struct {
	TickRate      *string
	PageStep      *int
	SkipMalformed *bool
	LogFile       *string
}

// EnvFunc is a function that looks up environment variables.
// Default implementation is os.LookupEnv. Injected for testability.
type EnvFunc func(key string) (string, bool)

// Resolve merges configuration from all sources in priority order:
// CLI flags > environment variables > config file > defaults.
//
// fileConfig may be nil when no wyclef.toml was found. File values override
// defaults only when non-zero, so an empty tick_rate or a page_step of 0 in
// the file keeps the default.
func Resolve(defaults *Config, fileConfig *Config, envFn EnvFunc, overrides *CLIOverrides) *ResolvedConfig {
	rc := &ResolvedConfig{
		Config:  &Config{},
		Sources: make(map[string]ConfigSource),
	}

	if defaults == nil {
		defaults = &Config{}
	}
	if envFn == nil {
		envFn = func(string) (string, bool) { return "", false }
	}
	if overrides == nil {
		overrides = &CLIOverrides{}
	}

	// Layer 1: defaults.
	v := &rc.Config.Viewer
	setString(&v.TickRate, defaults.Viewer.TickRate, "viewer.tick_rate", SourceDefault, rc.Sources)
	setInt(&v.PageStep, defaults.Viewer.PageStep, "viewer.page_step", SourceDefault, rc.Sources)
	setBool(&rc.Config.Load.SkipMalformed, defaults.Load.SkipMalformed, "load.skip_malformed", SourceDefault, rc.Sources)
	setString(&rc.Config.Logging.File, defaults.Logging.File, "logging.file", SourceDefault, rc.Sources)

	// Layer 2: file.
	if fileConfig != nil {
		mergeString(&v.TickRate, fileConfig.Viewer.TickRate, "viewer.tick_rate", SourceFile, rc.Sources)
		if fileConfig.Viewer.PageStep != 0 {
			setInt(&v.PageStep, fileConfig.Viewer.PageStep, "viewer.page_step", SourceFile, rc.Sources)
		}
		if fileConfig.Load.SkipMalformed {
			setBool(&rc.Config.Load.SkipMalformed, true, "load.skip_malformed", SourceFile, rc.Sources)
		}
		mergeString(&rc.Config.Logging.File, fileConfig.Logging.File, "logging.file", SourceFile, rc.Sources)
	}

	// Layer 3: environment.
	resolveFromEnv(rc, envFn)

	// Layer 4: CLI flags.
	if overrides.TickRate != nil {
		setString(&v.TickRate, *overrides.TickRate, "viewer.tick_rate", SourceCLI, rc.Sources)
	}
	if overrides.PageStep != nil {
		setInt(&v.PageStep, *overrides.PageStep, "viewer.page_step", SourceCLI, rc.Sources)
	}
	if overrides.SkipMalformed != nil {
		setBool(&rc.Config.Load.SkipMalformed, *overrides.SkipMalformed, "load.skip_malformed", SourceCLI, rc.Sources)
	}
	if overrides.LogFile != nil {
		setString(&rc.Config.Logging.File, *overrides.LogFile, "logging.file", SourceCLI, rc.Sources)
	}

	return rc
}

// resolveFromEnv applies environment variables:
//
//	WYCLEF_TICK_RATE      -> viewer.tick_rate
//	WYCLEF_PAGE_STEP      -> viewer.page_step
//	WYCLEF_SKIP_MALFORMED -> load.skip_malformed
//	WYCLEF_LOG_FILE       -> logging.file
func resolveFromEnv(rc *ResolvedConfig, envFn EnvFunc) {
	if val, ok := envFn(EnvTickRate); ok {
		setString(&rc.Config.Viewer.TickRate, val, "viewer.tick_rate", SourceEnv, rc.Sources)
	}
	if val, ok := envFn(EnvPageStep); ok {
		n, err := strconv.Atoi(val)
		if err != nil {
			rc.Ignored = append(rc.Ignored, fmt.Sprintf("%s=%s: not an integer", EnvPageStep, val))
		} else {
			setInt(&rc.Config.Viewer.PageStep, n, "viewer.page_step", SourceEnv, rc.Sources)
		}
	}
	if val, ok := envFn(EnvSkipMalformed); ok {
		b, err := strconv.ParseBool(val)
		if err != nil {
			rc.Ignored = append(rc.Ignored, fmt.Sprintf("%s=%s: not a boolean", EnvSkipMalformed, val))
		} else {
			setBool(&rc.Config.Load.SkipMalformed, b, "load.skip_malformed", SourceEnv, rc.Sources)
		}
	}
	if val, ok := envFn(EnvLogFile); ok {
		setString(&rc.Config.Logging.File, val, "logging.file", SourceEnv, rc.Sources)
	}
}

// --- Helpers ---

// setString unconditionally sets the target to the given value and records the source.
func setString(target *string, value string, path string, source ConfigSource, sources map[string]ConfigSource) {
	*target = value
	sources[path] = source
}

// mergeString overwrites the target only if value is non-empty. An empty
// string in the file means "not set in file".
func mergeString(target *string, value string, path string, source ConfigSource, sources map[string]ConfigSource) {
	if value != "" {
		*target = value
		sources[path] = source
	}
}

func setInt(target *int, value int, path string, source ConfigSource, sources map[string]ConfigSource) {
	*target = value
	sources[path] = source
}

func setBool(target *bool, value bool, path string, source ConfigSource, sources map[string]ConfigSource) {
	*target = value
	sources[path] = source
}
