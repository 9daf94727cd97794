package main

import (
	"context"
	"fmt"
	"os"
	"time"

	katexpdf "github.com/alnah/go-katexpdf"
	"github.com/alnah/go-katexpdf/internal/config"
)

// defaultWorkers keeps conversions sequential unless asked otherwise.
const defaultWorkers = 1

// run executes one invocation. args includes the program name.
// Precedence: CLI flags > environment (.env included) > config file > defaults.
func run(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseFlags(args[1:])
	if err != nil {
		return err
	}

	if flags.help {
		printUsage(env.Stdout)
		return nil
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "katexpdf %s\n", Version)
		return nil
	}

	if env.LoadDotEnv != nil {
		if err := env.LoadDotEnv(); err != nil {
			return err
		}
	}
	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig(env.Stderr)

	cfg, err := loadConfig(flags, envCfg, env)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	workers, err := resolveWorkerCount(flags, envCfg, cfg)
	if err != nil {
		return err
	}
	timeout, err := resolveTimeout(flags, envCfg, cfg)
	if err != nil {
		return err
	}

	input := cfg.Input
	if input == "" {
		input = "."
	}

	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("%w: %w", katexpdf.ErrRead, err)
	}
	if info.IsDir() && flags.output != "" {
		return fmt.Errorf("%w: %w", katexpdf.ErrArgument, katexpdf.ErrOutputWithDirectory)
	}

	settings := runSettings{
		workers:   workers,
		keepGoing: cfg.KeepGoing,
		quiet:     flags.quiet,
		verbose:   flags.verbose && !flags.quiet,
	}
	if settings.verbose {
		fmt.Fprintf(env.Stderr, "Input: %s\nWorkers: %d\nTimeout: %s\n", input, workers, timeout)
	}

	conv, err := env.NewConverter(
		katexpdf.WithTimeout(timeout),
		katexpdf.WithAssetPath(cfg.Assets.BasePath),
	)
	if err != nil {
		return err
	}

	opts := katexpdf.ConversionOptions{
		Refresh:          cfg.Refresh,
		ShowHeaderFooter: cfg.Header,
		OutputPath:       flags.output,
	}

	start := env.Now()
	if err := processInput(ctx, conv, input, opts, settings, env); err != nil {
		return err
	}

	if !settings.quiet {
		fmt.Fprintln(env.Stdout, "Done.")
	}
	if settings.verbose {
		fmt.Fprintf(env.Stderr, "Total: %v\n", env.Now().Sub(start).Round(time.Millisecond))
	}
	return nil
}

// loadConfig loads the config named by --config or KATEXPDF_CONFIG.
// Without either, an empty config is returned.
func loadConfig(flags *cliFlags, envCfg *envConfig, env *Environment) (*config.Config, error) {
	name := envCfg.ConfigPath
	if flags.config != "" {
		name = flags.config
	}
	if name == "" {
		return &config.Config{}, nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flags.verbose && !flags.quiet {
		fmt.Fprintf(env.Stderr, "Config: %s\n", name)
	}
	return cfg, nil
}

// mergeFlags applies explicitly set CLI flags on top of cfg.
// Boolean flags can only switch features on.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	if flags.changed["input"] {
		cfg.Input = flags.input
	}
	if flags.refresh {
		cfg.Refresh = true
	}
	if flags.header {
		cfg.Header = true
	}
	if flags.keepGoing {
		cfg.KeepGoing = true
	}
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}
}

// resolveWorkerCount returns the number of concurrent conversions.
// 0 from the config file, environment or flag means auto.
func resolveWorkerCount(flags *cliFlags, envCfg *envConfig, cfg *config.Config) (int, error) {
	n := defaultWorkers
	if w, ok := cfg.WorkerCount(); ok {
		n = w
	}
	if envCfg.WorkersSet {
		n = envCfg.Workers
	}
	if flags.changed["workers"] {
		n = flags.workers
	}

	if err := validateWorkers(n); err != nil {
		return 0, err
	}
	return katexpdf.ResolveWorkers(n), nil
}

// resolveTimeout returns the per-file export timeout.
func resolveTimeout(flags *cliFlags, envCfg *envConfig, cfg *config.Config) (time.Duration, error) {
	d := katexpdf.DefaultTimeout
	if t := cfg.TimeoutDuration(); t > 0 {
		d = t
	}
	if envCfg.Timeout > 0 {
		d = envCfg.Timeout
	}
	if flags.changed["timeout"] {
		d = flags.timeout
	}

	if err := validateTimeout(d); err != nil {
		return 0, err
	}
	return d, nil
}
