package main

import (
	"github.com/spf13/cobra"

	appLog "compass/internal/log"
	"compass/internal/web"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog page and API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().StringVar(&listenAddr, "listen", "", "HTTP listen address (overrides config if set)")
	}
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	appLog.Info("compass starting", "version", version)

	conf, err := loadConfig()
	if err != nil {
		return err
	}
	if listenAddr != "" {
		conf.Listen = listenAddr
	}

	appLog.Info("effective config",
		"listen", conf.Listen,
		"timezone", conf.Timezone,
		"data_source", conf.DataSource,
		"refresh", conf.RefreshCron,
		"watch", conf.Watch,
		"horizon_days", conf.HorizonDays,
	)

	ctx, cancel := signalContext()
	defer cancel()

	rec, gatherer, err := newRecorder()
	if err != nil {
		return err
	}
	store := openStore(ctx, conf, rec)

	if conf.RefreshEnabled() {
		c, err := store.Schedule(conf.RefreshCron)
		if err != nil {
			return err
		}
		defer c.Stop()
	}

	if conf.Watch && !conf.RemoteSource() {
		go func() {
			if err := store.Watch(ctx); err != nil {
				appLog.Error("data file watch stopped", err, "path", conf.DataSource)
			}
		}()
	}

	srv := web.NewServer(conf, store, web.WithMetrics(rec, gatherer))
	err = srv.Serve(ctx)
	appLog.Info("compass exiting")
	return err
}
