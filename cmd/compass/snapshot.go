package main

import (
	"github.com/spf13/cobra"

	"compass/internal/capture"
)

var (
	snapshotURL    string
	snapshotOut    string
	snapshotWidth  int
	snapshotHeight int
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save a PNG of the running catalog page (needs Chromium)",
	Args:  cobra.NoArgs,
	RunE:  runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVar(&snapshotURL, "url", "", "page to capture (default: http://<listen>/)")
	snapshotCmd.Flags().StringVarP(&snapshotOut, "out", "o", "catalog.png", "output PNG path")
	snapshotCmd.Flags().IntVar(&snapshotWidth, "width", capture.DefaultWidth, "viewport width")
	snapshotCmd.Flags().IntVar(&snapshotHeight, "height", capture.DefaultHeight, "viewport height")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	url := snapshotURL
	if url == "" {
		conf, err := loadConfig()
		if err != nil {
			return err
		}
		url = "http://" + conf.Listen + "/"
	}

	ctx, cancel := signalContext()
	defer cancel()

	if err := capture.Snapshot(ctx, capture.Options{
		URL:        url,
		OutputPath: snapshotOut,
		Width:      snapshotWidth,
		Height:     snapshotHeight,
	}); err != nil {
		return err
	}
	cmd.Printf("wrote %s\n", snapshotOut)
	return nil
}
