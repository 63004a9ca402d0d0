package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration to allow YAML unmarshalling from strings
// like "30s" or "5m".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("config: duration must be a string, got %s", value.ShortTag())
	}
	raw := strings.TrimSpace(value.Value)
	if raw == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", raw, err)
	}
	if parsed < 0 {
		return fmt.Errorf("config: duration %q must be >= 0", raw)
	}
	d.Duration = parsed
	return nil
}

// WatcherSpec declares one watcher by probe type.
type WatcherSpec struct {
	// Name identifies the watcher in results and hooks. Required.
	Name string `yaml:"name"`

	// Type selects the probe: http, tcp, ping, dns or memory. Required.
	Type string `yaml:"type"`

	// Timeout, when positive, bounds each execution of this watcher.
	Timeout Duration `yaml:"timeout"`

	// Options holds the probe-specific configuration, decoded into the
	// matching probe config struct. Keys are lower_snake_case field names.
	Options map[string]any `yaml:"options"`
}

// File is a parsed configuration document.
type File struct {
	// Iterations bounds the run. Zero means run until stopped.
	Iterations int64 `yaml:"iterations"`

	// Delay is the fixed pause between iterations.
	Delay Duration `yaml:"delay"`

	// Schedule is a standard cron expression. When set it overrides Delay.
	Schedule string `yaml:"schedule"`

	// Watchers lists the checks to run each iteration.
	Watchers []WatcherSpec `yaml:"watchers"`
}

// Load reads the file at path, expands environment variables and parses it.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse expands environment variables in data and decodes it. Unknown keys
// are rejected.
func Parse(data []byte) (*File, error) {
	expanded, err := ExpandEnvStrict(string(data))
	if err != nil {
		return nil, err
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	if len(f.Watchers) == 0 {
		return ErrNoWatchers
	}
	seen := make(map[string]struct{}, len(f.Watchers))
	for _, spec := range f.Watchers {
		if spec.Name == "" {
			return ErrUnnamedWatcher
		}
		if _, ok := seen[spec.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateWatcher, spec.Name)
		}
		seen[spec.Name] = struct{}{}
	}
	return nil
}
