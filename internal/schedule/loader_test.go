package schedule

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const testSchedule = `
resources:
  - id: r1
    title: Alice
  - id: r2
    title: Bob
    fields:
      team: platform

events:
  - id: kickoff
    resource: r1
    start: 2026-01-05
    end: 2026-01-07
    title: Kickoff
  - resource: r2
    start: 2026-01-05
    end: 2026-01-06
    title: Review
`

func TestParseSchedule(t *testing.T) {
	sched, err := Parse([]byte(testSchedule), date(2026, 1, 1), date(2026, 6, 1))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(sched.Resources) != 2 {
		t.Fatalf("got %d resources, want 2", len(sched.Resources))
	}
	if sched.Resources[1].Fields["team"] != "platform" {
		t.Error("resource fields not preserved")
	}

	if len(sched.Events) != 2 {
		t.Fatalf("got %d events, want 2", len(sched.Events))
	}
	if sched.Events[0].ID != "kickoff" {
		t.Errorf("explicit id lost: %q", sched.Events[0].ID)
	}
	if sched.Events[1].ID == "" {
		t.Error("event without id should have one assigned")
	}
	if !sched.Events[0].Start.Equal(date(2026, 1, 5)) || !sched.Events[0].End.Equal(date(2026, 1, 7)) {
		t.Errorf("kickoff interval = [%v, %v)", sched.Events[0].Start, sched.Events[0].End)
	}
}

func TestParseScheduleErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{
			name: "duplicate id",
			yaml: `
resources:
  - {id: r1, title: A}
events:
  - {id: x, resource: r1, start: 2026-01-01, end: 2026-01-02, title: one}
  - {id: x, resource: r1, start: 2026-02-01, end: 2026-02-02, title: two}
`,
			want: ErrDuplicateID,
		},
		{
			name: "unknown resource",
			yaml: `
resources:
  - {id: r1, title: A}
events:
  - {resource: nope, start: 2026-01-01, end: 2026-01-02, title: x}
`,
			want: ErrUnknownResource,
		},
		{
			name: "inverted interval",
			yaml: `
resources:
  - {id: r1, title: A}
events:
  - {resource: r1, start: 2026-01-05, end: 2026-01-05, title: x}
`,
			want: ErrInvalidInterval,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), date(2026, 1, 1), date(2027, 1, 1))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

// TestParseRepeat expands a weekly rule over the horizon: every
// instance keeps the base duration and gets a distinct id.
func TestParseRepeat(t *testing.T) {
	yaml := `
resources:
  - {id: r1, title: A}
events:
  - id: standup
    resource: r1
    start: 2026-01-05
    end: 2026-01-06
    title: Standup
    repeat: FREQ=WEEKLY;COUNT=4
`
	sched, err := Parse([]byte(yaml), date(2026, 1, 1), date(2026, 3, 1))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(sched.Events) != 4 {
		t.Fatalf("got %d instances, want 4", len(sched.Events))
	}

	ids := make(map[string]struct{})
	for i, inst := range sched.Events {
		if _, dup := ids[inst.ID]; dup {
			t.Errorf("instance %d reuses id %s", i, inst.ID)
		}
		ids[inst.ID] = struct{}{}

		if got := inst.Duration(); got != 24*time.Hour {
			t.Errorf("instance %d duration = %v, want 24h", i, got)
		}
		if i > 0 {
			gap := inst.Start.Sub(sched.Events[i-1].Start)
			if gap != 7*24*time.Hour {
				t.Errorf("instance %d is %v after the previous, want 168h", i, gap)
			}
		}
	}
}

func TestParseWhen(t *testing.T) {
	if _, err := parseWhen("2026-01-05"); err != nil {
		t.Errorf("plain date rejected: %v", err)
	}
	if _, err := parseWhen("2026-01-05T09:30:00Z"); err != nil {
		t.Errorf("RFC 3339 rejected: %v", err)
	}
	if _, err := parseWhen("next tuesday"); err == nil {
		t.Error("free text should be rejected")
	}
}

func TestImportICS(t *testing.T) {
	ics := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//test//EN",
		"BEGIN:VEVENT",
		"UID:evt-1",
		"DTSTART:20260105T000000Z",
		"DTEND:20260107T000000Z",
		"SUMMARY:Conference",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	events, err := ImportICS([]byte(ics), "r1")
	if err != nil {
		t.Fatalf("ImportICS: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	got := events[0]
	if got.ID != "evt-1" || got.ResourceID != "r1" || got.Title != "Conference" {
		t.Errorf("event = %+v", got)
	}
	if got.Duration() != 48*time.Hour {
		t.Errorf("duration = %v, want 48h", got.Duration())
	}
}
