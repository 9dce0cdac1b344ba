package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/cwarden/verdandi/internal/config"
	"github.com/cwarden/verdandi/internal/schedule"
	"github.com/cwarden/verdandi/internal/ui"
	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	scheduleFiles []string
	icsFile       string
	icsResource   string
	cfg           *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "verdandi",
	Short: "A terminal scheduling grid for resources and events",
	Long: `Verdandi shows resources as rows and time buckets as columns. Events
are created by click-dragging across a row and moved by drag-and-drop;
events on one resource are never allowed to overlap.`,
	RunE: runTUI,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringSliceVarP(&scheduleFiles, "file", "f", []string{}, "Schedule file(s) to use (can be specified multiple times)")
	rootCmd.PersistentFlags().StringVar(&icsFile, "ics", "", "Merge events from an iCalendar file")
	rootCmd.PersistentFlags().StringVar(&icsResource, "ics-resource", "", "Resource id to place imported iCalendar events on")
}

func initConfig() {
	var err error
	cfg, err = config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
}

// loadSchedule reads the configured schedule files, merging the
// optional ICS import on top.
func loadSchedule() (*schedule.Schedule, error) {
	if len(scheduleFiles) > 0 {
		// Also update the config so reloads watch the right files
		cfg.ScheduleFiles = scheduleFiles
	}

	now := time.Now()
	horizonStart := now.AddDate(0, 0, -cfg.HorizonDays)
	horizonEnd := now.AddDate(0, 0, 2*cfg.HorizonDays)

	merged := &schedule.Schedule{}
	for _, file := range cfg.ScheduleFiles {
		sched, err := schedule.LoadFile(file, horizonStart, horizonEnd)
		if err != nil {
			return nil, err
		}
		merged.Resources = append(merged.Resources, sched.Resources...)
		merged.Events = append(merged.Events, sched.Events...)
	}

	if icsFile != "" {
		if icsResource == "" {
			return nil, fmt.Errorf("--ics requires --ics-resource")
		}
		events, err := schedule.ImportICSFile(icsFile, icsResource)
		if err != nil {
			return nil, err
		}
		merged.Events = append(merged.Events, events...)
	}

	return merged, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	sched, err := loadSchedule()
	if err != nil {
		// Start with an empty grid rather than refusing to run; the
		// status bar shows the load problem on the first refresh.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		sched = &schedule.Schedule{}
	}

	model := ui.NewModel(cfg, sched)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	return nil
}
