package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadFullProfile(t *testing.T) {
	path := writeProfile(t, `
name: plasmashell
threshold_bytes: 2147483648
command: /usr/bin/kstart5
args:
  - plasmashell
check: true
check_delay: "10s"
kill_wait: "60s"
metrics_textfile: /var/lib/node_exporter/textfile/memwatch.prom
`)

	p, err := Load(path)
	require.NoError(t, err)

	cfg, err := p.WatchConfig()
	require.NoError(t, err)

	assert.Equal(t, "plasmashell", cfg.Name)
	assert.Equal(t, uint64(2147483648), cfg.ThresholdBytes)
	assert.Equal(t, "/usr/bin/kstart5", cfg.Command)
	assert.Equal(t, []string{"plasmashell"}, cfg.Args)
	assert.True(t, cfg.Check)
	assert.Equal(t, 10*time.Second, cfg.CheckDelay)
	assert.Equal(t, time.Minute, cfg.KillWait)
	assert.Equal(t, "/var/lib/node_exporter/textfile/memwatch.prom", p.MetricsTextfile)
}

func TestLoadDefaults(t *testing.T) {
	path := writeProfile(t, `
name: leaky
threshold_bytes: 1000000
command: /bin/run
`)

	p, err := Load(path)
	require.NoError(t, err)

	cfg, err := p.WatchConfig()
	require.NoError(t, err)

	assert.False(t, cfg.Check)
	assert.Equal(t, 5*time.Second, cfg.CheckDelay)
	assert.Zero(t, cfg.KillWait)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeProfile(t, "name: [unclosed")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestWatchConfigValidation(t *testing.T) {
	for name, contents := range map[string]string{
		"missing name":      "threshold_bytes: 1\ncommand: /bin/run\n",
		"missing threshold": "name: leaky\ncommand: /bin/run\n",
		"missing command":   "name: leaky\nthreshold_bytes: 1\n",
		"bad check_delay":   "name: leaky\nthreshold_bytes: 1\ncommand: /bin/run\ncheck_delay: soon\n",
		"bad kill_wait":     "name: leaky\nthreshold_bytes: 1\ncommand: /bin/run\nkill_wait: never\n",
	} {
		t.Run(name, func(t *testing.T) {
			p, err := Load(writeProfile(t, contents))
			require.NoError(t, err)

			_, err = p.WatchConfig()
			assert.Error(t, err)
		})
	}
}

func TestExampleProfileParses(t *testing.T) {
	p, err := Load(writeProfile(t, ExampleProfile))
	require.NoError(t, err)

	cfg, err := p.WatchConfig()
	require.NoError(t, err)
	assert.Equal(t, "plasmashell", cfg.Name)
}
