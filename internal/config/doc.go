// Package config manages user-level settings stored at ~/.pyskel/config.yaml.
// Settings can be overridden with PYSKEL_* environment variables and with
// command-line flags bound to the same keys.
package config
