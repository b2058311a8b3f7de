package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"compass/internal/ics"
)

var (
	deadlinesDays int
	deadlinesJSON bool
)

var deadlinesCmd = &cobra.Command{
	Use:   "deadlines",
	Short: "List upcoming program deadlines",
	Args:  cobra.NoArgs,
	RunE:  runDeadlines,
}

func init() {
	deadlinesCmd.Flags().IntVarP(&deadlinesDays, "days", "d", 0, "look-ahead window in days (default: config horizon_days)")
	deadlinesCmd.Flags().BoolVar(&deadlinesJSON, "json", false, "output deadlines as JSON")
	rootCmd.AddCommand(deadlinesCmd)
}

type deadlineOut struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Timeline string `json:"timeline"`
	Date     string `json:"date"`
}

func runDeadlines(cmd *cobra.Command, _ []string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	days := deadlinesDays
	if days <= 0 {
		days = conf.HorizonDays
	}

	store := openStore(context.Background(), conf, nil)
	upcoming := ics.Upcoming(store.Current().All(), now(conf), days)

	out := make([]deadlineOut, 0, len(upcoming))
	for _, d := range upcoming {
		out = append(out, deadlineOut{
			ID:       d.Program.ID,
			Name:     d.Program.Name,
			Timeline: d.Program.Timeline,
			Date:     d.Date.Format(time.DateOnly),
		})
	}

	if deadlinesJSON {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal deadlines: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(out) == 0 {
		cmd.Printf("No deadlines in the next %d days.\n", days)
		return nil
	}
	for _, d := range out {
		cmd.Printf("%s  %-30s  %s\n", d.Date, d.Name, d.Timeline)
	}
	return nil
}
