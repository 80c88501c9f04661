// Package config fills command-line flags from the environment and from an
// optional .env file.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// Binding ties a flag to the environment variable providing its default.
type Binding struct {
	Flag string
	Env  string
}

// Bindings lists the XNET_* variables understood by the xnet command.
var Bindings = []Binding{
	{Flag: "input-file", Env: "XNET_INPUT_FILE"},
	{Flag: "log-format", Env: "XNET_LOG_FORMAT"},
	{Flag: "metrics-path", Env: "XNET_METRICS_PATH"},
	{Flag: "chip", Env: "XNET_CHIP"},
}

// LoadDotEnv loads variables from path into the process environment.
// Variables already set are kept. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "config: load %s", path)
	}
	return nil
}

// ApplyEnv sets every bound flag that was not given on the command line
// from its environment variable, when that variable is non-empty. Flags
// absent from fs are skipped.
func ApplyEnv(fs *pflag.FlagSet, bindings []Binding) error {
	for _, b := range bindings {
		flag := fs.Lookup(b.Flag)
		if flag == nil || flag.Changed {
			continue
		}
		value := strings.TrimSpace(os.Getenv(b.Env))
		if value == "" {
			continue
		}
		if err := fs.Set(b.Flag, value); err != nil {
			return errors.Wrapf(err, "config: %s", b.Env)
		}
	}
	return nil
}
