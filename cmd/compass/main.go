package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"compass/internal/catalog"
	"compass/internal/config"
	appLog "compass/internal/log"
	"compass/internal/metrics"
	"compass/internal/web"
)

const version = "0.1.0"

var (
	configPath string
	dataSource string
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:           "compass",
	Short:         "Open source program catalog with deadline reminders",
	Long:          "Serves the open source program catalog and builds Google Calendar reminders for program deadlines.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./compass.yaml", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&dataSource, "data", "", "programs.json path or URL (overrides config if set)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		appLog.Error("compass failed", err)
		os.Exit(1)
	}
}

// loadConfig loads the config file and applies CLI overrides.
func loadConfig() (*config.Config, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		if conf == nil {
			return nil, err
		}
		// Defaults are usable even if the first-run file couldn't be written.
		appLog.Error("failed to write default config; continuing with defaults", err, "config_path", configPath)
	}

	if dataSource != "" {
		conf.DataSource = dataSource
	}

	appLog.SetLevel(appLog.ParseLevel(conf.LogLevel))
	if quiet {
		appLog.SetLevel(appLog.LevelError)
	}
	return conf, nil
}

// openStore builds the catalog store and performs the initial load.
func openStore(ctx context.Context, conf *config.Config, rec *metrics.Recorder) *catalog.Store {
	store := catalog.NewStore(catalog.NewLoader(conf.DataSource, conf.CacheDir), rec)
	store.Reload(ctx)
	return store
}

// now returns the current time in the configured timezone.
func now(conf *config.Config) time.Time {
	return time.Now().In(web.ResolveLocation(conf.Timezone))
}

// signalContext is canceled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			appLog.Info("signal received, shutting down", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

func newRecorder() (*metrics.Recorder, prometheus.Gatherer, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec, err := metrics.New(reg)
	if err != nil {
		return nil, nil, err
	}
	return rec, reg, nil
}
