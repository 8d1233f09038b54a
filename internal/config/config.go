package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// AppName names the config directory and the environment prefix.
const AppName = "formschema"

// Config is the command configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	Output OutputConfig `mapstructure:"output" yaml:"output"`
	Loader LoaderConfig `mapstructure:"loader" yaml:"loader"`
	Report ReportConfig `mapstructure:"report" yaml:"report"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// OutputConfig controls how filled values are written.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
}

// LoaderConfig controls schema and values loading.
type LoaderConfig struct {
	AllowHTTP bool          `mapstructure:"allow_http" yaml:"allow_http"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// ReportConfig controls validation reports.
type ReportConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
}

// New returns a Viper instance with defaults, search paths and environment
// binding installed.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(filepath.Join(xdg.ConfigHome, AppName))

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("output.format", "json")
	v.SetDefault("loader.allow_http", false)
	v.SetDefault("loader.timeout", 10*time.Second)
	v.SetDefault("report.format", "text")
	return v
}

// Load reads configuration into v. With an explicit path a missing file is
// an error; otherwise the search paths are tried and defaults are used when
// nothing is found.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = New()
	}
	if path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
		case errors.As(err, &notFound):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	return &cfg, nil
}
