package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atlanticdynamic/announcer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyEnviron() []string { return nil }

func environ(vars ...string) func() []string {
	return func() []string { return vars }
}

func writeConfigFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestEnvironmentName(t *testing.T) {
	t.Parallel()

	dotEnvDir := t.TempDir()
	writeConfigFile(t, dotEnvDir, ".env", "ANNOUNCER_ENVIRONMENT=Qa\n")

	tests := []struct {
		name   string
		opts   LoadOptions
		want   string
		source string
	}{
		{
			name:   "defaults to production",
			opts:   LoadOptions{Dir: t.TempDir(), Environ: emptyEnviron},
			want:   "production",
			source: "defaults",
		},
		{
			name:   "read from the dotenv file",
			opts:   LoadOptions{Dir: dotEnvDir, Environ: emptyEnviron},
			want:   "qa",
			source: filepath.Join(dotEnvDir, ".env"),
		},
		{
			name:   "process environment beats the dotenv file",
			opts:   LoadOptions{Dir: dotEnvDir, Environ: environ("ANNOUNCER_ENVIRONMENT=Staging")},
			want:   "staging",
			source: "env:ANNOUNCER_*",
		},
		{
			name: "command line beats the process environment",
			opts: LoadOptions{
				Dir:       dotEnvDir,
				Environ:   environ("ANNOUNCER_ENVIRONMENT=staging"),
				Overrides: []string{"environment=Development"},
			},
			want:   "development",
			source: "command-line",
		},
		{
			name: "explicit option wins",
			opts: LoadOptions{
				Dir:         dotEnvDir,
				Environment: " Development ",
				Environ:     environ("ANNOUNCER_ENVIRONMENT=staging"),
				Overrides:   []string{"environment=qa"},
			},
			want:   "development",
			source: SourceEnvironmentOption,
		},
		{
			name:   "blank value falls back to the default",
			opts:   LoadOptions{Dir: t.TempDir(), Environ: environ("ANNOUNCER_ENVIRONMENT= ")},
			want:   "production",
			source: "defaults",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EnvironmentName(tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Raw)
			assert.Equal(t, tt.source, got.Source)
		})
	}

	t.Run("malformed override fails", func(t *testing.T) {
		_, err := EnvironmentName(LoadOptions{Dir: t.TempDir(), Environ: emptyEnviron, Overrides: []string{"oops"}})
		require.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("no files uses defaults", func(t *testing.T) {
		cfg, err := Load(LoadOptions{Dir: t.TempDir(), Environ: emptyEnviron})
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.Environment)
		assert.Equal(t, "", cfg.App.TextToPrint)
		assert.Equal(t, 5*time.Second, cfg.App.Interval.AsDuration())
		assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	})

	t.Run("each layer overrides the previous one", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "announcer.toml", `
[app]
text_to_print = "from base file"
interval = "1s"

[logging]
level = "debug"
format = "json"
output = "stdout"
`)
		writeConfigFile(t, dir, "announcer.staging.toml", `
[app]
text_to_print = "from staging file"
interval = "2s"

[logging]
level = "warn"
format = "text"
`)
		writeConfigFile(t, dir, ".env", `
ANNOUNCER_APP__TEXT_TO_PRINT="from dotenv"
ANNOUNCER_APP__INTERVAL=3s
ANNOUNCER_LOGGING__LEVEL=error
`)
		cfg, err := Load(LoadOptions{
			Dir:         dir,
			Environment: "staging",
			Environ: environ(
				"ANNOUNCER_APP__TEXT_TO_PRINT=from environment",
				"ANNOUNCER_APP__INTERVAL=4s",
			),
			Overrides:   []string{"App:TextToPrint=from command line"},
		})
		require.NoError(t, err)

		assert.Equal(t, "staging", cfg.Environment)
		assert.Equal(t, "from command line", cfg.App.TextToPrint)
		assert.Equal(t, 4*time.Second, cfg.App.Interval.AsDuration())
		assert.Equal(t, LogLevelError, cfg.Logging.Level)
		assert.Equal(t, LogFormatText, cfg.Logging.Format)
		assert.Equal(t, "stdout", cfg.Logging.Output)

		sources := map[string]string{}
		for _, key := range []string{KeyTextToPrint, KeyInterval, KeyLoggingLevel, KeyLoggingFormat, KeyLoggingOutput} {
			v, ok := cfg.Resolved().Lookup(key)
			require.True(t, ok, key)
			sources[key] = v.Source
		}
		assert.Equal(t, map[string]string{
			KeyTextToPrint:   "command-line",
			KeyInterval:      "env:ANNOUNCER_*",
			KeyLoggingLevel:  filepath.Join(dir, ".env"),
			KeyLoggingFormat: filepath.Join(dir, "announcer.staging.toml"),
			KeyLoggingOutput: filepath.Join(dir, "announcer.toml"),
		}, sources)
	})

	t.Run("environment file follows the environment", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "announcer.production.toml", "[app]\ntext_to_print = \"prod\"\n")
		writeConfigFile(t, dir, "announcer.development.toml", "[app]\ntext_to_print = \"dev\"\n")

		cfg, err := Load(LoadOptions{Dir: dir, Environ: emptyEnviron})
		require.NoError(t, err)
		assert.Equal(t, "prod", cfg.App.TextToPrint)

		cfg, err = Load(LoadOptions{
			Dir:     dir,
			Environ: environ("ANNOUNCER_ENVIRONMENT=development"),
		})
		require.NoError(t, err)
		assert.Equal(t, "dev", cfg.App.TextToPrint)
	})

	t.Run("dotenv environment selects the environment file", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, ".env", "ANNOUNCER_ENVIRONMENT=staging\n")
		writeConfigFile(t, dir, "announcer.production.toml", "[app]\ntext_to_print = \"production text\"\n")
		writeConfigFile(t, dir, "announcer.staging.toml", "[app]\ntext_to_print = \"staging text\"\n")

		cfg, err := Load(LoadOptions{Dir: dir, Environ: emptyEnviron})
		require.NoError(t, err)
		assert.Equal(t, "staging", cfg.Environment)
		assert.Equal(t, "staging text", cfg.App.TextToPrint)
	})

	t.Run("command-line environment selects the environment file", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "announcer.production.toml", "[app]\ntext_to_print = \"production text\"\n")
		writeConfigFile(t, dir, "announcer.qa.toml", "[app]\ntext_to_print = \"qa text\"\n")

		cfg, err := Load(LoadOptions{
			Dir:       dir,
			Environ:   emptyEnviron,
			Overrides: []string{"Environment=QA"},
		})
		require.NoError(t, err)
		assert.Equal(t, "qa", cfg.Environment)
		assert.Equal(t, "qa text", cfg.App.TextToPrint)
	})

	t.Run("config files cannot rename the environment", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "announcer.toml", "environment = \"staging\"\n")
		writeConfigFile(t, dir, "announcer.production.toml", "environment = \"qa\"\n[app]\ntext_to_print = \"production text\"\n")

		cfg, err := Load(LoadOptions{Dir: dir, Environ: emptyEnviron})
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.Environment)
		assert.Equal(t, "production text", cfg.App.TextToPrint)

		v, ok := cfg.Resolved().Lookup(KeyEnvironment)
		require.True(t, ok)
		assert.Equal(t, "defaults", v.Source)
	})

	t.Run("AppConfig section is accepted as an alias", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "announcer.toml", "[AppConfig]\nTextToPrint = \"from file\"\n")

		cfg, err := Load(LoadOptions{Dir: dir, Environ: emptyEnviron})
		require.NoError(t, err)
		assert.Equal(t, "from file", cfg.App.TextToPrint)

		cfg, err = Load(LoadOptions{
			Dir:     dir,
			Environ: environ("ANNOUNCER_APPCONFIG__TEXTTOPRINT=from environment"),
		})
		require.NoError(t, err)
		assert.Equal(t, "from environment", cfg.App.TextToPrint)
		v, ok := cfg.Resolved().Lookup(KeyTextToPrint)
		require.True(t, ok)
		assert.Equal(t, "env:ANNOUNCER_*", v.Source)
	})

	t.Run("explicit dotenv path", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "custom.env", "ANNOUNCER_APP__TEXT_TO_PRINT=custom\n")

		cfg, err := Load(LoadOptions{
			Dir:        t.TempDir(),
			DotEnvFile: filepath.Join(dir, "custom.env"),
			Environ:    emptyEnviron,
		})
		require.NoError(t, err)
		assert.Equal(t, "custom", cfg.App.TextToPrint)
	})

	t.Run("invalid toml is fatal", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "announcer.toml", "[app\n")

		_, err := Load(LoadOptions{Dir: dir, Environ: emptyEnviron})
		require.ErrorIs(t, err, ErrFailedToLoadConfig)
		assert.Contains(t, err.Error(), "announcer.toml")
	})

	t.Run("malformed override is fatal", func(t *testing.T) {
		_, err := Load(LoadOptions{
			Dir:       t.TempDir(),
			Environ:   emptyEnviron,
			Overrides: []string{"not-a-pair"},
		})
		require.ErrorIs(t, err, ErrFailedToLoadConfig)
	})

	t.Run("invalid interval fails validation", func(t *testing.T) {
		_, err := Load(LoadOptions{
			Dir:       t.TempDir(),
			Environ:   emptyEnviron,
			Overrides: []string{"app.interval=0s"},
		})
		require.ErrorIs(t, err, ErrFailedToValidateConfig)
	})

	t.Run("logs each source at debug", func(t *testing.T) {
		dir := t.TempDir()
		handler := testutil.NewRecordHandler(slog.LevelDebug)

		_, err := Load(LoadOptions{
			Dir:     dir,
			Environ: emptyEnviron,
			Logger:  slog.New(handler),
		})
		require.NoError(t, err)

		var names []string
		for _, r := range handler.Records() {
			if r.Message != "Configuration source" {
				continue
			}
			r.Attrs(func(a slog.Attr) bool {
				if a.Key == "name" {
					names = append(names, a.Value.String())
				}
				return true
			})
		}
		assert.Equal(t, []string{
			"defaults",
			filepath.Join(dir, "announcer.toml"),
			filepath.Join(dir, "announcer.production.toml"),
			filepath.Join(dir, ".env"),
			"env:ANNOUNCER_*",
			"command-line",
		}, names)
	})
}
