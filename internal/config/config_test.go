package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Granularity != "day" {
		t.Errorf("default granularity = %s, want day", cfg.Granularity)
	}
	if cfg.ColumnWidth < 1 || cfg.RowHeight < 1 {
		t.Error("layout defaults must be positive")
	}
	if !cfg.Editable || !cfg.Creatable || !cfg.Droppable {
		t.Error("interaction should be enabled by default")
	}
	if cfg.DropCooldown != 300*time.Millisecond {
		t.Errorf("drop cooldown = %v, want 300ms", cfg.DropCooldown)
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `# test config
set granularity month
set column_width 10
set gutter_width 20
set droppable false
set drop_cooldown 500ms
set refresh_rate 60
bind t today
color event blue
`
	path := filepath.Join(t.TempDir(), "verdandirc")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := cfg.loadFromFile(path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}

	if cfg.Granularity != "month" {
		t.Errorf("granularity = %s, want month", cfg.Granularity)
	}
	if cfg.ColumnWidth != 10 || cfg.GutterWidth != 20 {
		t.Errorf("layout = (%d, %d), want (10, 20)", cfg.ColumnWidth, cfg.GutterWidth)
	}
	if cfg.Droppable {
		t.Error("droppable should be off")
	}
	if cfg.DropCooldown != 500*time.Millisecond {
		t.Errorf("drop cooldown = %v, want 500ms", cfg.DropCooldown)
	}
	if cfg.RefreshRate != 60*time.Second {
		t.Errorf("refresh rate = %v, want 60s (bare seconds)", cfg.RefreshRate)
	}
	if cfg.KeyBindings["today"] != "t" {
		t.Errorf("today binding = %s, want t", cfg.KeyBindings["today"])
	}
	if cfg.Colors["event"] != "blue" {
		t.Errorf("event color = %s, want blue", cfg.Colors["event"])
	}
}

func TestParseLineErrors(t *testing.T) {
	tests := []string{
		"set granularity week",
		"set column_width zero",
		"set column_width 0",
		"set unknown_thing 1",
		"frobnicate everything",
	}

	for _, line := range tests {
		cfg := DefaultConfig()
		if err := cfg.parseLine(line); err == nil {
			t.Errorf("parseLine(%q) accepted", line)
		}
	}
}

func TestScheduleFilesExpansion(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.setVariable("schedule_files", "~/a.yaml, /tmp/b.yaml"); err != nil {
		t.Fatal(err)
	}
	if len(cfg.ScheduleFiles) != 2 {
		t.Fatalf("got %d files, want 2", len(cfg.ScheduleFiles))
	}
	home, _ := os.UserHomeDir()
	if cfg.ScheduleFiles[0] != filepath.Join(home, "a.yaml") {
		t.Errorf("tilde not expanded: %s", cfg.ScheduleFiles[0])
	}
	if cfg.ScheduleFiles[1] != "/tmp/b.yaml" {
		t.Errorf("second file = %s", cfg.ScheduleFiles[1])
	}
}
