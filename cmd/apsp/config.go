package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config holds every setting of a run. It is filled from the YAML file
// named by --config first; flags given on the command line win.
type Config struct {
	Graph    string `yaml:"graph"`
	Directed bool   `yaml:"directed"`
	Grid     int    `yaml:"grid"`
	Pad      bool   `yaml:"pad"`
	Pool     int    `yaml:"pool"`
	Variant  string `yaml:"variant"`
	Verbose  bool   `yaml:"verbose"`
	Snapshot string `yaml:"snapshot"`
	Stats    bool   `yaml:"stats"`
	Topology string `yaml:"topology"`
}

func defaultConfig() Config {
	return Config{Directed: true, Variant: "auto", Topology: "torus"}
}

// decodeConfig reads YAML into cfg. Unknown keys are an error.
func decodeConfig(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config: %w", err)
	}

	return nil
}

// loadConfig overlays the YAML file at path onto cfg, then re-applies the
// flags that were set explicitly in fs so they take precedence.
func loadConfig(path string, fs *pflag.FlagSet, cfg *Config) error {
	changed := make(map[string]string)
	fs.Visit(func(f *pflag.Flag) {
		changed[f.Name] = f.Value.String()
	})

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err = decodeConfig(f, cfg); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	for name, v := range changed {
		if err = fs.Set(name, v); err != nil {
			return fmt.Errorf("re-apply --%s: %w", name, err)
		}
	}

	return nil
}
