// Package report exports the result of a run as Prometheus metrics in the
// node_exporter textfile collector format. A one-shot tool cannot serve
// /metrics, so the exposition is written to a file the collector scrapes.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/mexus/memory-watcher/internal/watch"
)

// Run describes one completed invocation for the metrics export.
type Run struct {
	Name      string
	Result    watch.Result
	Threshold uint64
	When      time.Time
}

// WriteTextfile writes the run metrics to path in the Prometheus text
// exposition format. The write is atomic: a temporary file in the same
// directory is renamed over the target so the collector never reads a
// partial exposition.
func WriteTextfile(path string, run Run) error {
	reg := prometheus.NewRegistry()

	labels := []string{"process"}
	rss := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "memwatch_resident_bytes",
		Help: "Aggregate resident set size of the watched process at the last run.",
	}, labels)
	threshold := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "memwatch_threshold_bytes",
		Help: "Configured resident memory threshold.",
	}, labels)
	matched := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "memwatch_matched_processes",
		Help: "Number of live processes that matched the watched name.",
	}, labels)
	outcome := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "memwatch_outcome_code",
		Help: "Outcome of the last run: 1 not-found, 2 no-action, 3 relaunched, 4 relaunch-failed, 5 retried.",
	}, labels)
	lastRun := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "memwatch_last_run_timestamp_seconds",
		Help: "Unix time of the last completed run.",
	}, labels)
	reg.MustRegister(rss, threshold, matched, outcome, lastRun)

	rss.WithLabelValues(run.Name).Set(float64(run.Result.RSS))
	threshold.WithLabelValues(run.Name).Set(float64(run.Threshold))
	matched.WithLabelValues(run.Name).Set(float64(run.Result.Matched))
	outcome.WithLabelValues(run.Name).Set(float64(run.Result.Outcome))
	lastRun.WithLabelValues(run.Name).Set(float64(run.When.Unix()))

	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create metrics file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := expfmt.NewEncoder(tmp, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to encode metrics: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move metrics file in place: %w", err)
	}
	return nil
}
