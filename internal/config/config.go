package config

import (
	"errors"
	"fmt"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys shared by flags, env vars (OSTIMELINE_*) and the config file.
const (
	KeyData     = "data"
	KeyPort     = "port"
	KeyLogLevel = "loglevel"
	KeyLogFile  = "log-file"
)

const (
	DefaultPort     = 8080
	DefaultLogLevel = "info"
)

// Config holds the settings that survive between runs.
type Config struct {
	DataFile string // Dataset override; empty means the embedded dataset
	Port     int
	LogLevel string
	LogFile  string // TUI log destination; empty discards
	Source   string // Config file actually read, if any
}

// Load resolves settings with precedence flag > env > config file > default.
// cfgFile may be empty, in which case $HOME/.ostimeline.yaml is tried and
// silently skipped when missing.
func Load(flags *pflag.FlagSet, cfgFile string) (Config, error) {
	v := viper.New()
	v.SetDefault(KeyPort, DefaultPort)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyData, "")
	v.SetDefault(KeyLogFile, "")

	v.SetEnvPrefix("ostimeline")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range []string{KeyData, KeyPort, KeyLogLevel, KeyLogFile} {
			if f := flags.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", key, err)
				}
			}
		}
	}

	if cfgFile != "" {
		path, err := homedir.Expand(cfgFile)
		if err != nil {
			return Config{}, fmt.Errorf("expand config path: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		home, err := homedir.Dir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(".ostimeline")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		DataFile: v.GetString(KeyData),
		Port:     v.GetInt(KeyPort),
		LogLevel: v.GetString(KeyLogLevel),
		LogFile:  v.GetString(KeyLogFile),
		Source:   v.ConfigFileUsed(),
	}
	if cfg.DataFile != "" {
		expanded, err := homedir.Expand(cfg.DataFile)
		if err != nil {
			return Config{}, fmt.Errorf("expand data path: %w", err)
		}
		cfg.DataFile = expanded
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	return cfg, nil
}

// Addr returns the listen address for web mode.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
