package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mexus/memory-watcher/internal/config"
	"github.com/mexus/memory-watcher/internal/discover"
	"github.com/mexus/memory-watcher/internal/report"
	"github.com/mexus/memory-watcher/internal/spawn"
	"github.com/mexus/memory-watcher/internal/watch"
)

var (
	watchName        string
	watchThreshold   uint64
	watchCommand     string
	watchCheck       bool
	watchCheckDelay  time.Duration
	watchKillWait    time.Duration
	watchProfile     string
	watchMetricsFile string
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] -- [command args...]",
	Short: "Check the process once and restart it if it is over the threshold",
	Long: `Watch performs a single check: it locates every live process whose
command name matches --name, sums their resident set sizes and compares the
total against --threshold. When the total strictly exceeds the threshold,
the target's environment is captured, every match receives SIGTERM, and the
relaunch command is started with that exact environment.

With --check the process list is scanned again after a short delay and the
relaunch is retried once if the process is absent.

Arguments after -- are appended to the relaunch command.

Example:
  memwatch watch --name plasmashell --threshold 2147483648 \
      --command /usr/bin/kstart5 -- plasmashell
  memwatch watch --profile /etc/memwatch/plasmashell.yaml`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchName, "name", "", "process name to watch (comm field, exact match)")
	watchCmd.Flags().Uint64Var(&watchThreshold, "threshold", 0, "resident memory limit in bytes (not pages)")
	watchCmd.Flags().StringVarP(&watchCommand, "command", "c", "", "command that relaunches the process")
	watchCmd.Flags().BoolVar(&watchCheck, "check", false, "verify the relaunch and retry once if the process is absent")
	watchCmd.Flags().DurationVar(&watchCheckDelay, "check-delay", watch.DefaultCheckDelay, "delay before the post-relaunch verification scan")
	watchCmd.Flags().DurationVar(&watchKillWait, "kill-wait", 0, "wait up to this long for the old process to exit before relaunching (0 = don't wait)")
	watchCmd.Flags().StringVar(&watchProfile, "profile", "", "YAML profile supplying the watch configuration")
	watchCmd.Flags().StringVar(&watchMetricsFile, "metrics-textfile", "", "write run metrics to this file in Prometheus textfile collector format")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, metricsFile, err := buildWatchConfig(cmd, args)
	if err != nil {
		return err
	}

	w := watch.New(cfg, discover.New(), spawn.New())
	result, runErr := w.Run()

	if metricsFile != "" {
		wErr := report.WriteTextfile(metricsFile, report.Run{
			Name:      cfg.Name,
			Result:    result,
			Threshold: cfg.ThresholdBytes,
			When:      time.Now(),
		})
		if wErr != nil {
			log.Printf("Metrics export failed: %v", wErr)
		}
	}

	if runErr != nil {
		return fmt.Errorf("watch %q ended with %s: %w", cfg.Name, result.Outcome, runErr)
	}
	log.Printf("Outcome: %s", result.Outcome)
	if !result.Outcome.Success() {
		return fmt.Errorf("watch %q ended with %s", cfg.Name, result.Outcome)
	}
	return nil
}

// buildWatchConfig merges, in increasing priority: the viper config/env
// layer, the --profile file, and the command's own flags.
func buildWatchConfig(cmd *cobra.Command, args []string) (watch.Config, string, error) {
	profilePath := watchProfile
	if profilePath == "" {
		profilePath = viper.GetString("profile")
	}

	var cfg watch.Config
	metricsFile := viper.GetString("metrics_textfile")

	if profilePath != "" {
		p, err := config.Load(profilePath)
		if err != nil {
			return watch.Config{}, "", err
		}
		cfg, err = p.WatchConfig()
		if err != nil {
			return watch.Config{}, "", fmt.Errorf("profile %s: %w", profilePath, err)
		}
		if p.MetricsTextfile != "" {
			metricsFile = p.MetricsTextfile
		}
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		cfg.Name = watchName
	}
	if flags.Changed("threshold") {
		cfg.ThresholdBytes = watchThreshold
	}
	if flags.Changed("command") {
		cfg.Command = watchCommand
	}
	if flags.Changed("check") {
		cfg.Check = watchCheck
	}
	if flags.Changed("check-delay") {
		cfg.CheckDelay = watchCheckDelay
	}
	if flags.Changed("kill-wait") {
		cfg.KillWait = watchKillWait
	}
	if flags.Changed("metrics-textfile") {
		metricsFile = watchMetricsFile
	}
	if len(args) > 0 {
		cfg.Args = args
	}

	if err := cfg.Validate(); err != nil {
		return watch.Config{}, "", err
	}
	return cfg, metricsFile, nil
}
