package schedule

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// maxOccurrencesPerRule caps recurrence expansion so a malformed rule
// cannot produce an unbounded event list.
const maxOccurrencesPerRule = 1000

// fileResource is the YAML shape of one resource entry.
type fileResource struct {
	ID     string            `yaml:"id"`
	Title  string            `yaml:"title"`
	Fields map[string]string `yaml:"fields,omitempty"`
}

// fileEvent is the YAML shape of one event entry. Start/End are
// RFC 3339 or plain dates; End is exclusive. Repeat holds an RRULE
// string expanded over the load horizon.
type fileEvent struct {
	ID        string `yaml:"id,omitempty"`
	Resource  string `yaml:"resource"`
	Start     string `yaml:"start"`
	End       string `yaml:"end"`
	Title     string `yaml:"title"`
	Color     string `yaml:"color,omitempty"`
	Repeat    string `yaml:"repeat,omitempty"`
	Editable  *bool  `yaml:"editable,omitempty"`
	Draggable *bool  `yaml:"draggable,omitempty"`
	Resizable *bool  `yaml:"resizable,omitempty"`
}

type fileSchedule struct {
	Resources []fileResource `yaml:"resources"`
	Events    []fileEvent    `yaml:"events"`
}

// Schedule is the loaded collection handed to the coordinator. It is
// replaced wholesale on reload, never mutated in place.
type Schedule struct {
	Resources []Resource
	Events    []Event
}

// LoadFile reads one YAML schedule file and expands recurring events
// across [horizonStart, horizonEnd). Events without an id are assigned
// one; duplicate explicit ids are a load error.
func LoadFile(path string, horizonStart, horizonEnd time.Time) (*Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schedule %s: %w", path, err)
	}
	sched, err := Parse(data, horizonStart, horizonEnd)
	if err != nil {
		return nil, fmt.Errorf("parsing schedule %s: %w", path, err)
	}
	return sched, nil
}

// Parse decodes a YAML schedule payload. Split from LoadFile so tests
// can feed literals.
func Parse(data []byte, horizonStart, horizonEnd time.Time) (*Schedule, error) {
	var raw fileSchedule
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	sched := &Schedule{}
	resourceIDs := make(map[string]struct{}, len(raw.Resources))
	for _, r := range raw.Resources {
		if r.ID == "" {
			return nil, fmt.Errorf("resource %q: missing id", r.Title)
		}
		resourceIDs[r.ID] = struct{}{}
		sched.Resources = append(sched.Resources, Resource{
			ID:     r.ID,
			Title:  r.Title,
			Fields: r.Fields,
		})
	}

	seen := make(map[string]struct{})
	for i, fe := range raw.Events {
		start, err := parseWhen(fe.Start)
		if err != nil {
			return nil, fmt.Errorf("event %d: start: %w", i, err)
		}
		end, err := parseWhen(fe.End)
		if err != nil {
			return nil, fmt.Errorf("event %d: end: %w", i, err)
		}
		if !end.After(start) {
			return nil, fmt.Errorf("event %d (%s): %w", i, fe.Title, ErrInvalidInterval)
		}
		if _, ok := resourceIDs[fe.Resource]; !ok {
			return nil, fmt.Errorf("event %d (%s): %w: %s", i, fe.Title, ErrUnknownResource, fe.Resource)
		}

		id := fe.ID
		if id == "" {
			id = uuid.NewString()
		} else {
			if _, dup := seen[id]; dup {
				return nil, fmt.Errorf("event %d: %w: %s", i, ErrDuplicateID, id)
			}
			seen[id] = struct{}{}
		}

		base := Event{
			ID:         id,
			ResourceID: fe.Resource,
			Start:      start,
			End:        end,
			Title:      fe.Title,
			Color:      fe.Color,
			Editable:   fe.Editable,
			Draggable:  fe.Draggable,
			Resizable:  fe.Resizable,
		}

		if fe.Repeat == "" {
			sched.Events = append(sched.Events, base)
			continue
		}

		instances, err := expandRepeat(base, fe.Repeat, horizonStart, horizonEnd)
		if err != nil {
			return nil, fmt.Errorf("event %d (%s): repeat: %w", i, fe.Title, err)
		}
		sched.Events = append(sched.Events, instances...)
	}

	return sched, nil
}

// expandRepeat turns one recurring event into concrete instances over
// the horizon. Each instance keeps the base duration and gets a
// derived id so the index and gestures can address it individually.
func expandRepeat(base Event, repeat string, horizonStart, horizonEnd time.Time) ([]Event, error) {
	r, err := rrule.StrToRRule(repeat)
	if err != nil {
		return nil, err
	}
	r.DTStart(base.Start)

	dur := base.Duration()
	starts := r.Between(horizonStart, horizonEnd, true)
	if len(starts) > maxOccurrencesPerRule {
		starts = starts[:maxOccurrencesPerRule]
	}

	out := make([]Event, 0, len(starts))
	for n, s := range starts {
		ev := base
		ev.Start = s
		ev.End = s.Add(dur)
		if n > 0 {
			ev.ID = fmt.Sprintf("%s#%d", base.ID, n)
		}
		out = append(out, ev)
	}
	return out, nil
}

// parseWhen accepts RFC 3339 timestamps or plain dates.
func parseWhen(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized time %q", s)
	}
	return t, nil
}
