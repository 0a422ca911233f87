package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	configName      = ".chipcmp"
	configType      = "yaml"
	envPrefix       = "CHIPCMP"
	envKeySeparator = "_"
)

// Load merges defaults, the config file and CHIPCMP_* environment variables,
// later layers winning. The result is not validated: callers apply their own
// overrides (flags, arguments) first and then call Validate.
//
// An explicit configPath must exist. Without one, .chipcmp.yaml is looked up
// in the working directory and then $HOME, and its absence is not an error.
func Load(configPath string) (*Config, error) {
	layers := viper.New()
	layers.SetConfigType(configType)

	for key, value := range Default().settings() {
		layers.SetDefault(key, value)
	}

	layers.SetEnvPrefix(envPrefix)
	layers.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	layers.AutomaticEnv()

	readErr := readConfigFile(layers, configPath)
	if readErr != nil {
		return nil, readErr
	}

	cfg := Default()

	decodeErr := layers.Unmarshal(&cfg)
	if decodeErr != nil {
		return nil, fmt.Errorf("decode config: %w", decodeErr)
	}

	return &cfg, nil
}

func readConfigFile(layers *viper.Viper, configPath string) error {
	if configPath != "" {
		layers.SetConfigFile(configPath)
	} else {
		layers.SetConfigName(configName)
		layers.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			layers.AddConfigPath(home)
		}
	}

	err := layers.ReadInConfig()

	var notFound viper.ConfigFileNotFoundError
	if err != nil && (configPath != "" || !errors.As(err, &notFound)) {
		return fmt.Errorf("read config %s: %w", layers.ConfigFileUsed(), err)
	}

	return nil
}

// Default returns the configuration used when no file, env var or flag
// overrides anything.
func Default() Config {
	return Config{
		Compare: CompareConfig{
			Reference:   DefaultReference,
			Candidate:   DefaultCandidate,
			Delimiter:   DefaultDelimiter,
			MaxLineSize: DefaultMaxLineSize,
		},
		Output: OutputConfig{
			Format: DefaultOutputFormat,
			Diff:   DefaultOutputDiff,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// settings flattens c into the dotted keys used by the file and env layers.
// Every key must be registered so AutomaticEnv can resolve it on Unmarshal.
func (c Config) settings() map[string]any {
	return map[string]any{
		"compare.reference":     c.Compare.Reference,
		"compare.candidate":     c.Compare.Candidate,
		"compare.delimiter":     c.Compare.Delimiter,
		"compare.max_line_size": c.Compare.MaxLineSize,
		"output.format":         c.Output.Format,
		"output.diff":           c.Output.Diff,
		"logging.level":         c.Logging.Level,
		"logging.format":        c.Logging.Format,
	}
}
