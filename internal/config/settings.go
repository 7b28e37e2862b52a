package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Settings holds runtime options that are independent of any one plan.
type Settings struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
	Server  ServerConfig  `mapstructure:"server"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputFile string `mapstructure:"output_file"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format   string `mapstructure:"format"`   // console, json, csv, trajectory-csv
	Currency string `mapstructure:"currency"` // KRW, USD
}

// ServerConfig holds HTTP API options
type ServerConfig struct {
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DefaultSettings returns the values used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Output:  OutputConfig{Format: "console", Currency: "KRW"},
		Server:  ServerConfig{Address: ":8080", AllowedOrigins: []string{"*"}},
	}
}

// LoadSettings reads an optional settings file and FIREGO_* environment
// overrides. An empty path skips the file.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	defaults := DefaultSettings()
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.output_file", "")
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.currency", defaults.Output.Currency)
	v.SetDefault("server.address", defaults.Server.Address)
	v.SetDefault("server.allowed_origins", defaults.Server.AllowedOrigins)

	v.SetEnvPrefix("FIREGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading settings file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}

	settings.Output.Currency = strings.ToUpper(settings.Output.Currency)
	if settings.Output.Currency != "KRW" && settings.Output.Currency != "USD" {
		return nil, fmt.Errorf("unsupported currency: %s", settings.Output.Currency)
	}

	return &settings, nil
}
