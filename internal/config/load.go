package config

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/atlanticdynamic/announcer/internal/config/layers"
)

const (
	// EnvPrefix marks the environment variables read as configuration.
	EnvPrefix = "ANNOUNCER_"

	// BaseFileName is the config file read from the config directory. The
	// environment-specific file is BaseFileName.<environment>.toml.
	BaseFileName = "announcer"

	DefaultDotEnvFile = ".env"

	// SourceEnvironmentOption names the explicit LoadOptions.Environment,
	// which is set from the --environment flag.
	SourceEnvironmentOption = "command-line"
)

// sectionAliases accepts the AppConfig section name used by earlier releases.
var sectionAliases = map[string]string{"appconfig": "app"}

// LoadOptions selects where configuration is read from.
type LoadOptions struct {
	// Dir holds announcer.toml and announcer.<environment>.toml. Defaults to ".".
	Dir string
	// Environment overrides every other source of the environment name.
	Environment string
	// DotEnvFile is an optional .env file. Defaults to ".env" in Dir.
	DotEnvFile string
	// Overrides are command-line key=value pairs, highest precedence.
	Overrides []string
	// Environ defaults to os.Environ.
	Environ func() []string
	// Logger receives debug output while loading. Defaults to slog.Default().
	Logger *slog.Logger
}

func (opts LoadOptions) dir() string {
	if opts.Dir == "" {
		return "."
	}
	return opts.Dir
}

func (opts LoadOptions) dotEnvSource() layers.Source {
	path := opts.DotEnvFile
	if path == "" {
		path = filepath.Join(opts.dir(), DefaultDotEnvFile)
	}
	return &layers.DotEnvFile{Path: path, Prefix: EnvPrefix, Optional: true}
}

func (opts LoadOptions) environmentSource() layers.Source {
	return &layers.Environment{Prefix: EnvPrefix, Environ: opts.Environ}
}

func (opts LoadOptions) commandLineSource() layers.Source {
	return &layers.CommandLine{Args: opts.Overrides}
}

// Sources returns the configuration sources for env in increasing precedence:
// defaults, the base file, the environment file, the .env file, process
// environment and finally the command line.
func Sources(opts LoadOptions, env string) []layers.Source {
	dir := opts.dir()
	sources := []layers.Source{
		layers.NewStatic("defaults", Defaults()),
		&layers.TOMLFile{Path: filepath.Join(dir, BaseFileName+".toml"), Optional: true},
		&layers.TOMLFile{Path: filepath.Join(dir, BaseFileName+"."+env+".toml"), Optional: true},
		opts.dotEnvSource(),
		opts.environmentSource(),
		opts.commandLineSource(),
	}
	for i, src := range sources {
		sources[i] = layers.Rename(src, sectionAliases)
	}
	return sources
}

// EnvironmentName picks the environment that selects the environment file.
// The explicit option wins, then the command line, the process environment
// and the .env file, in that order. Config files cannot choose the file they
// are read from, so they are not consulted. The default is "production".
func EnvironmentName(opts LoadOptions) (layers.Value, error) {
	if opts.Environment != "" {
		return layers.Value{
			Raw:    normalizeEnvironment(opts.Environment),
			Source: SourceEnvironmentOption,
		}, nil
	}

	resolved, err := layers.Resolve(
		opts.dotEnvSource(),
		opts.environmentSource(),
		opts.commandLineSource(),
	)
	if err != nil {
		return layers.Value{}, err
	}

	v, ok := resolved.Lookup(KeyEnvironment)
	if !ok || normalizeEnvironment(v.Raw) == "" {
		return layers.Value{Raw: DefaultEnvironment, Source: "defaults"}, nil
	}
	v.Raw = normalizeEnvironment(v.Raw)
	return v, nil
}

// Load resolves every source, decodes and validates the result.
func Load(opts LoadOptions) (*Config, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.WithGroup("config")

	env, err := EnvironmentName(opts)
	if err != nil {
		return nil, joinWith(ErrFailedToLoadConfig, []error{err})
	}
	logger.Debug("Environment selected", "environment", env.Raw, "source", env.Source)

	sources := Sources(opts, env.Raw)
	for _, src := range sources {
		logger.Debug("Configuration source", "name", src.Name())
	}

	resolved, err := layers.Resolve(sources...)
	if err != nil {
		return nil, joinWith(ErrFailedToLoadConfig, []error{err})
	}
	// the selected environment replaces anything a config file claims
	resolved[KeyEnvironment] = env
	logger.Debug("Configuration resolved", "keys", len(resolved))

	cfg, err := FromResolved(resolved)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func normalizeEnvironment(env string) string {
	return strings.ToLower(strings.TrimSpace(env))
}
