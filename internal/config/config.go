package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Data sources
	ScheduleFiles []string

	// Grid layout
	Granularity string // day, month, quarter
	ColumnWidth int    // cells per column
	RowHeight   int    // cells per resource row
	GutterWidth int    // cells for the resource title column
	HorizonDays int    // days of columns generated around today

	// Interaction
	Editable            bool
	Creatable           bool
	Droppable           bool
	EdgeThreshold       int     // cells from a viewport edge where auto-scroll engages
	MaxScrollHorizontal float64 // cells per tick at the edge
	MaxScrollVertical   float64
	DropCooldown        time.Duration

	// Display
	DateFormat string
	Colors     map[string]string

	// Behavior
	AutoRefresh bool
	RefreshRate time.Duration

	// UI
	KeyBindings map[string]string
}

func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		ScheduleFiles: []string{filepath.Join(home, ".verdandi.yaml")},

		Granularity: "day",
		ColumnWidth: 8,
		RowHeight:   2,
		GutterWidth: 16,
		HorizonDays: 90,

		Editable:            true,
		Creatable:           true,
		Droppable:           true,
		EdgeThreshold:       4,
		MaxScrollHorizontal: 2,
		MaxScrollVertical:   1,
		DropCooldown:        300 * time.Millisecond,

		DateFormat: "Jan 2, 2006",
		Colors: map[string]string{
			"normal":   "default",
			"today":    "yellow",
			"selected": "reverse",
			"header":   "bold",
			"event":    "green",
			"conflict": "red",
		},

		AutoRefresh: true,
		RefreshRate: 30 * time.Second,

		KeyBindings: map[string]string{
			"quit":      "q",
			"help":      "?",
			"today":     "o",
			"refresh":   "r",
			"new_event": "n",
			"next_col":  "l",
			"prev_col":  "h",
			"next_row":  "j",
			"prev_row":  "k",
			"zoom":      "z",
			"goto_date": "g",
		},
	}
}

func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	// Try multiple config file locations
	configPaths := []string{
		os.Getenv("VERDANDI_CONFIG"),
		filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "verdandi", "verdandirc"),
		filepath.Join(os.Getenv("HOME"), ".config", "verdandi", "verdandirc"),
		filepath.Join(os.Getenv("HOME"), ".verdandirc"),
	}

	for _, path := range configPaths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); err == nil {
			if err := config.loadFromFile(path); err != nil {
				return nil, fmt.Errorf("error loading config from %s: %w", path, err)
			}
			break
		}
	}

	return config, nil
}

func (c *Config) loadFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := c.parseLine(line); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	return scanner.Err()
}

func (c *Config) parseLine(line string) error {
	// Handle set commands: set variable value
	setRe := regexp.MustCompile(`^set\s+(\w+)\s+(.+)$`)
	if matches := setRe.FindStringSubmatch(line); matches != nil {
		return c.setVariable(matches[1], matches[2])
	}

	// Handle bind commands: bind key action
	bindRe := regexp.MustCompile(`^bind\s+(\S+)\s+(\S+)$`)
	if matches := bindRe.FindStringSubmatch(line); matches != nil {
		c.KeyBindings[matches[2]] = matches[1]
		return nil
	}

	// Handle color commands: color element color_spec
	colorRe := regexp.MustCompile(`^color\s+(\w+)\s+(.+)$`)
	if matches := colorRe.FindStringSubmatch(line); matches != nil {
		c.Colors[matches[1]] = matches[2]
		return nil
	}

	return fmt.Errorf("unknown config line: %s", line)
}

func (c *Config) setVariable(name, value string) error {
	// Remove quotes if present
	value = strings.Trim(value, `"'`)

	switch name {
	case "schedule_file", "schedule_files":
		// Handle multiple files separated by commas
		files := strings.Split(value, ",")
		for i, file := range files {
			files[i] = strings.TrimSpace(file)
			// Expand ~ to home directory
			if strings.HasPrefix(files[i], "~/") {
				home, _ := os.UserHomeDir()
				files[i] = filepath.Join(home, files[i][2:])
			}
		}
		c.ScheduleFiles = files

	case "granularity":
		switch strings.ToLower(value) {
		case "day", "month", "quarter":
			c.Granularity = strings.ToLower(value)
		default:
			return fmt.Errorf("invalid granularity: %s", value)
		}

	case "column_width":
		width, err := strconv.Atoi(value)
		if err != nil || width < 1 {
			return fmt.Errorf("invalid column_width: %s", value)
		}
		c.ColumnWidth = width

	case "row_height":
		height, err := strconv.Atoi(value)
		if err != nil || height < 1 {
			return fmt.Errorf("invalid row_height: %s", value)
		}
		c.RowHeight = height

	case "gutter_width":
		width, err := strconv.Atoi(value)
		if err != nil || width < 0 {
			return fmt.Errorf("invalid gutter_width: %s", value)
		}
		c.GutterWidth = width

	case "horizon_days":
		days, err := strconv.Atoi(value)
		if err != nil || days < 1 {
			return fmt.Errorf("invalid horizon_days: %s", value)
		}
		c.HorizonDays = days

	case "editable":
		c.Editable = strings.ToLower(value) == "true" || value == "1"

	case "creatable":
		c.Creatable = strings.ToLower(value) == "true" || value == "1"

	case "droppable":
		c.Droppable = strings.ToLower(value) == "true" || value == "1"

	case "edge_threshold":
		cells, err := strconv.Atoi(value)
		if err != nil || cells < 0 {
			return fmt.Errorf("invalid edge_threshold: %s", value)
		}
		c.EdgeThreshold = cells

	case "max_scroll_horizontal":
		speed, err := strconv.ParseFloat(value, 64)
		if err != nil || speed < 0 {
			return fmt.Errorf("invalid max_scroll_horizontal: %s", value)
		}
		c.MaxScrollHorizontal = speed

	case "max_scroll_vertical":
		speed, err := strconv.ParseFloat(value, 64)
		if err != nil || speed < 0 {
			return fmt.Errorf("invalid max_scroll_vertical: %s", value)
		}
		c.MaxScrollVertical = speed

	case "drop_cooldown":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid drop_cooldown: %s", value)
		}
		c.DropCooldown = d

	case "date_format":
		c.DateFormat = value

	case "auto_refresh":
		c.AutoRefresh = strings.ToLower(value) == "true" || value == "1"

	case "refresh_rate":
		rate, err := time.ParseDuration(value)
		if err != nil {
			// Try parsing as seconds
			if seconds, err2 := strconv.Atoi(value); err2 == nil {
				rate = time.Duration(seconds) * time.Second
			} else {
				return fmt.Errorf("invalid refresh_rate: %s", value)
			}
		}
		c.RefreshRate = rate

	default:
		return fmt.Errorf("unknown config variable: %s", name)
	}

	return nil
}
