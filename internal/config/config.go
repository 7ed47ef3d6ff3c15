// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
	"github.com/swissrent/mietzins/pkg/constants"
)

// Configuration holds all configuration for mietzins. Every field has a
// default, so the binary runs without a config file.
type Configuration struct {
	Sources SourcesConfig `yaml:"sources,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
}

// SourcesConfig points at the remote reference data sources.
type SourcesConfig struct {
	MortgageRateURL   string `yaml:"mortgageRateUrl,omitempty"`
	InflationIndexURL string `yaml:"inflationIndexUrl,omitempty"`
	InflationSheet    string `yaml:"inflationSheet,omitempty"`
	HTTPTimeout       int    `yaml:"httpTimeout,omitempty"` // seconds
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A missing file is not an error; defaults apply.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	var configuration Configuration
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	} else if err := viper.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.applyDefaults()
	return &configuration, nil
}

func (conf *Configuration) applyDefaults() {
	if conf.Sources.MortgageRateURL == "" {
		conf.Sources.MortgageRateURL = constants.DefaultMortgageRateURL
	}
	if conf.Sources.InflationIndexURL == "" {
		conf.Sources.InflationIndexURL = constants.DefaultInflationIndexURL
	}
	if conf.Sources.InflationSheet == "" {
		conf.Sources.InflationSheet = constants.DefaultInflationSheet
	}
	if conf.Sources.HTTPTimeout <= 0 {
		conf.Sources.HTTPTimeout = constants.DefaultHTTPTimeoutSeconds
	}
}

// HTTPTimeout returns the configured remote fetch timeout.
func (conf *Configuration) HTTPTimeout() time.Duration {
	return time.Duration(conf.Sources.HTTPTimeout) * time.Second
}
