package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/shlex"
	"github.com/pyskel/pyskel/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyEngine    = "engine"
	KeyTimeout   = "timeout"
	KeyPTY       = "pty"
	KeyLogLevel  = "log_level"
	KeyLogFormat = "log_format"
)

// DefaultTimeout is the wait budget for a single expected prompt.
const DefaultTimeout = 30 * time.Second

// Dir returns the path to the config directory (~/.pyskel/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.pyskel/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// ReplayDir returns the directory holding replay files of past generate runs.
func ReplayDir() string {
	return filepath.Join(Dir(), "replay")
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetDefault(KeyEngine, branding.DefaultEngine())
	viper.SetDefault(KeyTimeout, DefaultTimeout.String())
	viper.SetDefault(KeyPTY, true)
	viper.SetDefault(KeyLogLevel, "warn")
	viper.SetDefault(KeyLogFormat, "console")

	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Engine returns the template engine command line split into argv.
func Engine() ([]string, error) {
	line := viper.GetString(KeyEngine)
	argv, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("parsing engine command %q: %w", line, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("engine command is empty; set %s or pass --engine", branding.EnvVar(KeyEngine))
	}
	return argv, nil
}

// Timeout returns the per-prompt wait budget. Bare numbers are seconds.
func Timeout() (time.Duration, error) {
	raw := viper.GetString(KeyTimeout)
	if d, err := time.ParseDuration(raw); err == nil {
		if d <= 0 {
			return 0, fmt.Errorf("timeout must be positive, got %s", raw)
		}
		return d, nil
	}
	secs := viper.GetFloat64(KeyTimeout)
	if secs <= 0 {
		return 0, fmt.Errorf("invalid timeout %q", raw)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// UsePTY reports whether the driver should attach the engine to a pseudo-terminal.
func UsePTY() bool {
	return viper.GetBool(KeyPTY)
}
