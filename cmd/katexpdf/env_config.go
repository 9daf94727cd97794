package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/alnah/go-katexpdf/internal/config"
)

const envPrefix = "KATEXPDF_"

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath string        // KATEXPDF_CONFIG: config file name or path
	Input      string        // KATEXPDF_INPUT: file or directory
	Timeout    time.Duration // KATEXPDF_TIMEOUT: export timeout
	Workers    int           // KATEXPDF_WORKERS: parallel conversions
	WorkersSet bool          // KATEXPDF_WORKERS present and valid (0 = auto)
}

// knownEnvVars lists valid KATEXPDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"KATEXPDF_CONFIG":  true,
	"KATEXPDF_INPUT":   true,
	"KATEXPDF_TIMEOUT": true,
	"KATEXPDF_WORKERS": true,
}

// loadDotEnv reads .env from the working directory. Variables already set
// in the process environment win. A missing file is not an error.
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading .env: %w", err)
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable timeout and worker values are ignored with a warning.
func loadEnvConfig(w io.Writer) *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("KATEXPDF_CONFIG"),
		Input:      os.Getenv("KATEXPDF_INPUT"),
	}

	if timeout := os.Getenv("KATEXPDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		} else {
			fmt.Fprintf(w, "warning: ignoring KATEXPDF_TIMEOUT=%q (want a positive duration such as 90s)\n", timeout)
		}
	}

	if workers := os.Getenv("KATEXPDF_WORKERS"); workers != "" {
		if n, err := strconv.Atoi(workers); err == nil && n >= 0 {
			cfg.Workers = n
			cfg.WorkersSet = true
		} else {
			fmt.Fprintf(w, "warning: ignoring KATEXPDF_WORKERS=%q (want an integer >= 0)\n", workers)
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized KATEXPDF_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides config file values with environment values.
// Timeout and workers are resolved separately (resolveTimeout,
// resolveWorkerCount). CLI flags are applied afterwards via mergeFlags.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Input != "" {
		cfg.Input = env.Input
	}
}
