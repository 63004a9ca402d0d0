package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/robfig/cron/v3"

	"github.com/jonwraymond/warden/probe"
	"github.com/jonwraymond/warden/run"
	"github.com/jonwraymond/warden/watch"
)

// Build turns a parsed file into a run configuration. The returned config
// has no hooks attached; register them before calling run.New.
func (f *File) Build() (run.Config, error) {
	cfg := run.Config{
		Iterations: f.Iterations,
		Delay:      f.Delay.Duration,
	}
	if f.Schedule != "" {
		sched, err := cron.ParseStandard(f.Schedule)
		if err != nil {
			return run.Config{}, fmt.Errorf("config: schedule %q: %w", f.Schedule, err)
		}
		cfg.Schedule = sched
	}

	for _, spec := range f.Watchers {
		w, err := buildWatcher(spec)
		if err != nil {
			return run.Config{}, fmt.Errorf("config: watcher %q: %w", spec.Name, err)
		}
		if spec.Timeout.Duration > 0 {
			w = watch.WithTimeout(w, spec.Timeout.Duration)
		}
		cfg.Watchers = append(cfg.Watchers, run.WatcherEntry{Watcher: w})
	}
	return cfg, nil
}

func buildWatcher(spec WatcherSpec) (watch.Watcher, error) {
	switch strings.ToLower(spec.Type) {
	case "http":
		var pc probe.HTTPConfig
		if err := decodeOptions(spec.Options, &pc); err != nil {
			return nil, err
		}
		return probe.NewHTTPWatcher(spec.Name, pc), nil
	case "tcp":
		var pc probe.TCPConfig
		if err := decodeOptions(spec.Options, &pc); err != nil {
			return nil, err
		}
		return probe.NewTCPWatcher(spec.Name, pc), nil
	case "ping":
		var pc probe.PingConfig
		if err := decodeOptions(spec.Options, &pc); err != nil {
			return nil, err
		}
		return probe.NewPingWatcher(spec.Name, pc), nil
	case "dns":
		var pc probe.DNSConfig
		if err := decodeOptions(spec.Options, &pc); err != nil {
			return nil, err
		}
		return probe.NewDNSWatcher(spec.Name, pc), nil
	case "memory":
		var pc probe.MemoryConfig
		if err := decodeOptions(spec.Options, &pc); err != nil {
			return nil, err
		}
		mem := probe.NewMemoryWatcher(pc)
		if spec.Name != mem.Name() {
			return watch.NewWatcherFunc(spec.Name, mem.Execute), nil
		}
		return mem, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProbe, spec.Type)
	}
}

// decodeOptions maps lower_snake_case option keys onto probe config fields.
// Unknown keys are an error so typos fail at load time.
func decodeOptions(options map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		MatchName: func(mapKey, fieldName string) bool {
			return strings.EqualFold(strings.ReplaceAll(mapKey, "_", ""), fieldName)
		},
		Result: target,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(options)
}
