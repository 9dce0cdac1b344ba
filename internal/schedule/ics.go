package schedule

import (
	"bytes"
	"fmt"
	"os"

	ical "github.com/arran4/golang-ical"
)

// ImportICS parses an iCalendar payload and returns its VEVENTs as
// events on the given resource. Recurrence inside the ICS is not
// expanded; imported events are concrete instances. Events missing a
// start or end are skipped rather than failing the whole import.
func ImportICS(body []byte, resourceID string) ([]Event, error) {
	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing ics: %w", err)
	}

	var out []Event
	for _, ve := range cal.Events() {
		start, err := ve.GetStartAt()
		if err != nil {
			continue
		}
		end, err := ve.GetEndAt()
		if err != nil || !end.After(start) {
			continue
		}

		id := ""
		if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
			id = p.Value
		}
		if id == "" {
			continue
		}

		title := ""
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			title = p.Value
		}

		out = append(out, Event{
			ID:         id,
			ResourceID: resourceID,
			Start:      start,
			End:        end,
			Title:      title,
		})
	}
	return out, nil
}

// ImportICSFile reads an .ics file and imports its events onto the
// given resource.
func ImportICSFile(path, resourceID string) ([]Event, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ics %s: %w", path, err)
	}
	return ImportICS(body, resourceID)
}
