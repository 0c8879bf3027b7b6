package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Viet-ph/kevent/config"
)

var cfgFile string

func newRootCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kqwatch",
		Short: "Watch files, processes, signals and timers through kqueue",
		Long: `kqwatch registers the requested watches on a kqueue and prints one line
per event until a stop signal arrives, the event count is reached or
nothing is left to watch.

Every flag can also be set in the config file or through a KQWATCH_*
environment variable, e.g. KQWATCH_TIMEOUT_MS=-1.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			return run(cmd.Context(), cfg, logger, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.Int("timeout", config.DefaultTimeoutMs, "wait bound in milliseconds, -1 blocks")
	flags.Int("max-events", config.DefaultMaxEvents, "events returned per wait")
	flags.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.StringSlice("file", nil, "file to watch for vnode changes (repeatable)")
	flags.IntSlice("pid", nil, "process to watch for exit, fork and exec (repeatable)")
	flags.StringSlice("signal", nil, "signal to watch, e.g. HUP or SIGUSR1 (repeatable)")
	flags.IntSlice("timer", nil, "periodic timer in milliseconds (repeatable)")
	flags.Bool("stdin", false, "watch standard input for reads")
	flags.Int("count", 0, "stop after this many events, 0 means no limit")

	bindings := map[string]string{
		"timeout_ms": "timeout",
		"max_events": "max-events",
		"log_level":  "log-level",
		"files":      "file",
		"pids":       "pid",
		"signals":    "signal",
		"timers":     "timer",
		"stdin":      "stdin",
		"count":      "count",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding --%s to %s: %v", name, key, err))
		}
	}

	return cmd
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "kqwatch:", err)
		os.Exit(1)
	}
}
