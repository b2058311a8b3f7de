package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"compass/internal/catalog"
	"compass/internal/gcal"
	"compass/internal/model"
)

var (
	listDifficulty string
	listStatus     string
	listSearch     string
	listJSON       bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List programs in the catalog",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listDifficulty, "difficulty", "", "only programs with this difficulty (exact)")
	listCmd.Flags().StringVar(&listStatus, "status", "", "only programs with this status (exact)")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "case-insensitive search in name and description")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output programs as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}

	store := openStore(context.Background(), conf, nil)
	programs := store.Current().Filter(catalog.Filter{
		Difficulty: listDifficulty,
		Status:     listStatus,
		Search:     listSearch,
	})

	if listJSON {
		data, err := json.MarshalIndent(programs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal programs: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(programs) == 0 {
		cmd.Println("No programs found.")
		return nil
	}
	cmd.Print(renderTable(programs))
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var tableWidths = []int{4, 28, 11, 13, 24, 8}

func renderRow(cells []string, style lipgloss.Style) string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = style.Inherit(cellStyle).Width(tableWidths[i] + 2).MaxWidth(tableWidths[i] + 2).Render(c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

func renderTable(programs []model.Program) string {
	var b strings.Builder
	b.WriteString(renderRow([]string{"ID", "NAME", "STATUS", "DIFFICULTY", "TIMELINE", "REMIND"}, headerStyle) + "\n")
	for _, p := range programs {
		remind := mutedStyle.Render("-")
		if gcal.ShouldOfferCalendar(p) {
			remind = "yes"
		}
		b.WriteString(renderRow([]string{strconv.Itoa(p.ID), p.Name, p.Status, p.Difficulty, p.Timeline, remind}, lipgloss.NewStyle()) + "\n")
	}
	return b.String()
}
