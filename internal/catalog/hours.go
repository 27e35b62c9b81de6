package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"

	"itinerary/internal/timecore"
)

// slotJSON mirrors the catalog ingest wire format for a single slot:
// {"start": "HH:MM", "end": "HH:MM"}. A `null` entry in the enclosing list
// means "closed" for that weekday and carries no slotJSON value.
type slotJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// closedSentinel is the normalized "end" value for a slot meant to run to
// the end of the day; authors may also write "00:00" meaning the same.
const closedSentinel = "23:59"

// ParseHoursJSON decodes the `hours` column's serialized mapping
// (weekday -> list of {start,end} slots, with null entries for closed days)
// into an Hours value. "00:00" as an end time is normalized to "23:59" per
// the ingest contract.
func ParseHoursJSON(raw []byte) (Hours, error) {
	var wire map[string][]*slotJSON
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("catalog: parse hours: %w", err)
	}

	hours := make(Hours, len(wire))
	for key, slots := range wire {
		wd, err := parseWeekdayKey(key)
		if err != nil {
			return nil, err
		}
		for _, s := range slots {
			if s == nil {
				continue
			}
			slot, err := parseSlotJSON(s)
			if err != nil {
				return nil, fmt.Errorf("catalog: weekday %d: %w", wd, err)
			}
			hours[wd] = append(hours[wd], slot)
		}
	}
	return hours, nil
}

func parseSlotJSON(s *slotJSON) (Slot, error) {
	end := s.End
	if end == "00:00" {
		end = closedSentinel
	}
	start, err := timecore.Parse(s.Start)
	if err != nil {
		return Slot{}, err
	}
	endClock, err := timecore.Parse(end)
	if err != nil {
		return Slot{}, err
	}
	return Slot{Start: start, End: endClock}, nil
}

func parseWeekdayKey(key string) (Weekday, error) {
	n, err := strconv.Atoi(key)
	if err != nil || n < 1 || n > 7 {
		return 0, fmt.Errorf("catalog: bad weekday key %q", key)
	}
	return Weekday(n), nil
}

// MarshalHoursJSON serializes Hours back into the ingest wire format, for
// round-tripping through storage layers that keep the raw JSON (e.g. the
// Postgres-backed catalog store).
func MarshalHoursJSON(h Hours) ([]byte, error) {
	wire := make(map[string][]*slotJSON, len(h))
	for wd, slots := range h {
		key := strconv.Itoa(int(wd))
		rendered := make([]*slotJSON, 0, len(slots))
		for _, s := range slots {
			rendered = append(rendered, &slotJSON{Start: s.Start.String(), End: s.End.String()})
		}
		wire[key] = rendered
	}
	return json.Marshal(wire)
}
