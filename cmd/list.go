package cmd

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

var listResource string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List resources and their events and exit",
	Long:  `List every resource with its scheduled events as a table and exit.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listResource, "resource", "", "Only list events for this resource id")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	// Ensure config is loaded
	if cfg == nil {
		initConfig()
	}

	sched, err := loadSchedule()
	if err != nil {
		return fmt.Errorf("error loading schedule: %w", err)
	}

	title := color.New(color.Bold, color.Underline)
	faint := color.New(color.Faint)

	for _, res := range sched.Resources {
		if listResource != "" && res.ID != listResource {
			continue
		}

		var events []int
		for i, ev := range sched.Events {
			if ev.ResourceID == res.ID {
				events = append(events, i)
			}
		}
		sort.Slice(events, func(a, b int) bool {
			return sched.Events[events[a]].Start.Before(sched.Events[events[b]].Start)
		})

		_, _ = title.Println(res.Title)
		if len(events) == 0 {
			_, _ = faint.Println("  (no events)")
			fmt.Println()
			continue
		}

		table := uitable.New()
		table.MaxColWidth = 50
		table.AddRow("  FROM", "UNTIL", "TITLE")
		for _, i := range events {
			ev := sched.Events[i]
			table.AddRow(
				"  "+ev.Start.Format(cfg.DateFormat),
				ev.End.Format(cfg.DateFormat),
				ev.Title,
			)
		}
		fmt.Println(table)
		fmt.Println()
	}

	return nil
}
