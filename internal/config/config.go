// Package config loads watch profiles from YAML files.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mexus/memory-watcher/internal/watch"
)

// Profile is the on-disk form of a watch configuration. Flags override
// whatever the file supplies.
type Profile struct {
	// Process name to watch, as reported by the kernel
	Name string `yaml:"name"`

	// RSS limit in bytes (not pages)
	ThresholdBytes uint64 `yaml:"threshold_bytes"`

	// Relaunch invocation
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`

	// Verify the relaunch after check_delay and retry once if absent
	Check      bool   `yaml:"check"`
	CheckDelay string `yaml:"check_delay"` // e.g. "5s"

	// Wait up to this long for the signaled process to exit before
	// relaunching; empty or "0s" relaunches immediately
	KillWait string `yaml:"kill_wait"`

	// Where to drop textfile-collector metrics; empty disables the export
	MetricsTextfile string `yaml:"metrics_textfile"`
}

// Load reads a profile from a YAML file and applies defaults.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	if p.CheckDelay == "" {
		p.CheckDelay = watch.DefaultCheckDelay.String()
	}

	return &p, nil
}

// WatchConfig converts the profile into a validated watch configuration.
func (p *Profile) WatchConfig() (watch.Config, error) {
	cfg := watch.Config{
		Name:           p.Name,
		ThresholdBytes: p.ThresholdBytes,
		Command:        p.Command,
		Args:           p.Args,
		Check:          p.Check,
	}

	if p.CheckDelay != "" {
		d, err := time.ParseDuration(p.CheckDelay)
		if err != nil {
			return watch.Config{}, fmt.Errorf("invalid check_delay: %w", err)
		}
		cfg.CheckDelay = d
	}

	if p.KillWait != "" {
		d, err := time.ParseDuration(p.KillWait)
		if err != nil {
			return watch.Config{}, fmt.Errorf("invalid kill_wait: %w", err)
		}
		cfg.KillWait = d
	}

	if err := cfg.Validate(); err != nil {
		return watch.Config{}, err
	}
	return cfg, nil
}

// ExampleProfile documents the profile format.
const ExampleProfile = `# memwatch profile

# Process name to watch (comm field, exact match)
name: plasmashell

# Resident memory limit in bytes; the process is restarted when its
# aggregate RSS strictly exceeds this
threshold_bytes: 2147483648

# How to bring the process back
command: /usr/bin/kstart5
args:
  - plasmashell

# Re-scan after the relaunch and retry once if the process is absent
check: true
check_delay: "5s"

# Wait for the old process to exit before relaunching (0s = don't wait)
kill_wait: "60s"

# Uncomment to export run metrics for the node_exporter textfile collector
# metrics_textfile: /var/lib/node_exporter/textfile/memwatch.prom
`
