package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the filesystem used for config, targets and credentials. Tests replace it.
var AppFs = afero.NewOsFs()

// configDirOverride is set by tests to avoid touching the real home directory.
var configDirOverride string

const envPrefix = "AZMIGRATE"

// Override points the package at fs and dir instead of the OS filesystem and
// ~/.azmigrate. The returned func restores the previous values.
func Override(fs afero.Fs, dir string) (restore func()) {
	oldFs, oldDir := AppFs, configDirOverride
	AppFs, configDirOverride = fs, dir
	return func() {
		AppFs, configDirOverride = oldFs, oldDir
	}
}

type Config struct {
	OutputFormat string    `mapstructure:"output_format"`
	Plain        bool      `mapstructure:"plain"`
	DefaultSite  string    `mapstructure:"default_site"`
	Log          LogConfig `mapstructure:"log"`
}

// LogConfig controls the zerolog output of the CLI.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func normalizeOutputFormat(format string) string {
	switch format {
	case "table", "json":
		return format
	default:
		return "table"
	}
}

// ConfigureZerolog sets the global level and, for the console format, a human writer on stderr.
func (c LogConfig) ConfigureZerolog() {
	level := zerolog.WarnLevel
	switch strings.ToLower(c.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn", "warning":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	case "disabled", "off":
		level = zerolog.Disabled
	}
	zerolog.SetGlobalLevel(level)

	if strings.ToLower(c.Format) == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

// GetConfigDir returns ~/.azmigrate, creating it when missing.
func GetConfigDir() (string, error) {
	configDir := configDirOverride
	if configDir == "" {
		home, err := homedir.Dir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".azmigrate")
	}
	if _, err := AppFs.Stat(configDir); os.IsNotExist(err) {
		if err := AppFs.MkdirAll(configDir, 0755); err != nil {
			return "", err
		}
	}
	return configDir, nil
}

func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func newViper(dir string) *viper.Viper {
	v := viper.New()
	v.SetFs(AppFs)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("output_format", "table")
	v.SetDefault("plain", false)
	v.SetDefault("default_site", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	return v
}

// LoadConfig reads config.yaml from the config directory (or the working directory),
// AZMIGRATE_* environment variables and optional .env files.
func LoadConfig() (*Config, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}

	loadDotEnv()

	v := newViper(dir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.OutputFormat = normalizeOutputFormat(cfg.OutputFormat)
	return &cfg, nil
}

// SaveConfig writes cfg to config.yaml in the config directory.
func SaveConfig(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	v := newViper(filepath.Dir(path))
	v.Set("output_format", normalizeOutputFormat(cfg.OutputFormat))
	v.Set("plain", cfg.Plain)
	v.Set("default_site", cfg.DefaultSite)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)
	return v.WriteConfigAs(path)
}

func loadDotEnv() {
	if _, err := AppFs.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Debug().Err(err).Msg("failed to load .env")
		}
	}
	if _, err := AppFs.Stat(".env.local"); err == nil {
		if err := godotenv.Overload(".env.local"); err != nil {
			log.Debug().Err(err).Msg("failed to load .env.local")
		}
	}
}
