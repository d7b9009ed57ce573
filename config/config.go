// Package config — .i18nx.yaml configuration file support.
//
// When a .i18nx.yaml file exists in the working directory (or is named
// via --config), it supplies defaults for batching, delays, and the
// translation provider chain. Command-line flags override file values;
// with no file, built-in defaults apply.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the default configuration file name.
const FileName = ".i18nx.yaml"

// File is the top-level .i18nx.yaml structure.
type File struct {
	// BatchSize is the number of strings translated per batch.
	BatchSize int `yaml:"batch_size,omitempty"`
	// Delay is the pause between batches, in seconds.
	Delay float64 `yaml:"delay,omitempty"`
	// OutputDir receives reports, snapshots, and the log file.
	OutputDir string `yaml:"output_dir,omitempty"`
	// SourceLang / TargetLang are the translation pair (zh-CN → en).
	SourceLang string `yaml:"source_lang,omitempty"`
	TargetLang string `yaml:"target_lang,omitempty"`
	// MaxRetries is the per-provider retry budget.
	MaxRetries int `yaml:"max_retries,omitempty"`
	// OfflineAfter is the failure streak that triggers the
	// connectivity probe.
	OfflineAfter int `yaml:"offline_after,omitempty"`
	// Providers is the fallback chain in priority order; empty means
	// the built-in chain (google, mymemory, lingva).
	Providers []ProviderSpec `yaml:"providers,omitempty"`
}

// ProviderSpec declares one translation service in the chain.
type ProviderSpec struct {
	// Name selects the adapter: google, mymemory, lingva.
	Name string `yaml:"name"`
	// BaseURL overrides the service endpoint (self-hosted instances).
	BaseURL string `yaml:"base_url,omitempty"`
	// Timeout is the per-request timeout (e.g. "15s").
	Timeout Duration `yaml:"timeout,omitempty"`
}

// Duration adds YAML support for Go duration strings ("15s", "2m").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("timeout must be a duration string: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Load reads a configuration file. A missing file is not an error and
// yields nil; callers treat nil as "defaults only".
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &f, nil
}

func (f *File) validate() error {
	if f.BatchSize < 0 {
		return fmt.Errorf("batch_size must not be negative")
	}
	if f.Delay < 0 {
		return fmt.Errorf("delay must not be negative")
	}
	for i, p := range f.Providers {
		if p.Name == "" {
			return fmt.Errorf("providers[%d]: missing name", i)
		}
	}
	return nil
}
