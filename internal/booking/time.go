package booking

import (
	"strings"
	"time"
)

// SlotDuration is the fixed length of every appointment.
const SlotDuration = 30 * time.Minute

// Layouts tried in order. The '+'-separated forms exist because spaces in the
// input are rewritten to '+' first (see ParseStartTime).
var startLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02+15:04:05Z07:00",
	"2006-01-02+15:04:05",
}

// ParseStartTime parses a requested appointment start. Clients have
// historically sent the date/time separator as a space; those spaces are
// rewritten to the literal '+' before parsing, so "2024-06-01 10:00:00"
// is parsed as "2024-06-01+10:00:00".
func ParseStartTime(raw string) (time.Time, error) {
	normalized := strings.ReplaceAll(raw, " ", "+")
	for _, layout := range startLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &InvalidTimeFormatError{Input: raw}
}

// Slot returns the candidate interval [start, start+SlotDuration).
func Slot(start time.Time) (time.Time, time.Time) {
	return start, start.Add(SlotDuration)
}

// datePortion returns the raw input up to the first 'T', mirroring what the
// confirmation payload has always reported.
func datePortion(raw string) string {
	return strings.SplitN(raw, "T", 2)[0]
}
