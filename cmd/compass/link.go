package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"compass/internal/gcal"
	"compass/internal/web"
)

var (
	linkAt    string
	linkForce bool
)

var linkCmd = &cobra.Command{
	Use:   "link <program-id>",
	Short: "Print the Google Calendar reminder link for a program",
	Long: `Prints the Google Calendar link that pre-fills an all-day deadline event
for the program. The deadline is inferred from the program's timeline text.`,
	Args: cobra.ExactArgs(1),
	RunE: runLink,
}

func init() {
	linkCmd.Flags().StringVar(&linkAt, "at", "", "reference date (YYYY-MM-DD) instead of today")
	linkCmd.Flags().BoolVar(&linkForce, "force", false, "print a link even if the program gets no reminder")
	rootCmd.AddCommand(linkCmd)
}

func runLink(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid program id %q", args[0])
	}

	conf, err := loadConfig()
	if err != nil {
		return err
	}

	ref := now(conf)
	if linkAt != "" {
		ref, err = time.ParseInLocation(time.DateOnly, linkAt, web.ResolveLocation(conf.Timezone))
		if err != nil {
			return fmt.Errorf("invalid --at date: %w", err)
		}
	}

	store := openStore(context.Background(), conf, nil)
	p, ok := store.Current().Find(id)
	if !ok {
		return fmt.Errorf("program %d not found", id)
	}
	if !gcal.ShouldOfferCalendar(p) && !linkForce {
		return fmt.Errorf("no calendar reminder for %q (status %q, timeline %q); use --force to override", p.Name, p.Status, p.Timeline)
	}

	cmd.Println(gcal.BuildLink(p, ref))
	return nil
}
