package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"compass/internal/ics"
	"compass/internal/web"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "ics",
	Short: "Export program deadlines as an iCalendar feed",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}

	store := openStore(context.Background(), conf, nil)
	body := ics.Export(store.Current().All(), now(conf), ics.ExportOptions{
		Name:     "Open source program deadlines",
		Location: web.ResolveLocation(conf.Timezone),
	})

	if exportOut == "" {
		_, err := cmd.OutOrStdout().Write(body)
		return err
	}
	if err := os.WriteFile(exportOut, body, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOut, err)
	}
	cmd.Printf("wrote %s\n", exportOut)
	return nil
}
