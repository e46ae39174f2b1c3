package booking

import (
	"errors"
	"testing"
	"time"
)

func TestParseStartTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "rfc3339 with offset",
			input: "2024-06-01T10:00:00+05:30",
			want:  time.Date(2024, 6, 1, 10, 0, 0, 0, time.FixedZone("", 5*3600+30*60)),
		},
		{
			name:  "naive iso8601",
			input: "2024-06-01T10:00:00",
			want:  time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "space separator is rewritten to plus",
			input: "2024-06-01 10:00:00",
			want:  time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "plus separator",
			input: "2024-06-01+10:00:00",
			want:  time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStartTime(tt.input)
			if err != nil {
				t.Fatalf("ParseStartTime(%q) returned error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseStartTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseStartTimeSpaceNormalization(t *testing.T) {
	// The space form must parse to exactly what the '+' form parses to.
	withSpace, err := ParseStartTime("2024-06-01 10:00:00")
	if err != nil {
		t.Fatalf("space form: %v", err)
	}
	withPlus, err := ParseStartTime("2024-06-01+10:00:00")
	if err != nil {
		t.Fatalf("plus form: %v", err)
	}
	if !withSpace.Equal(withPlus) {
		t.Errorf("space form parsed to %v, plus form to %v", withSpace, withPlus)
	}
}

func TestParseStartTimeInvalid(t *testing.T) {
	for _, input := range []string{"", "not-a-date", "2024-13-45T99:00:00", "01/06/2024 10:00"} {
		_, err := ParseStartTime(input)
		if err == nil {
			t.Errorf("ParseStartTime(%q) expected error, got none", input)
			continue
		}
		var formatErr *InvalidTimeFormatError
		if !errors.As(err, &formatErr) {
			t.Errorf("ParseStartTime(%q) error = %v, want *InvalidTimeFormatError", input, err)
		}
	}
}

func TestSlotDuration(t *testing.T) {
	starts := []time.Time{
		time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 23, 45, 0, 0, time.UTC),
		time.Now(),
	}
	for _, start := range starts {
		slotStart, slotEnd := Slot(start)
		if !slotStart.Equal(start) {
			t.Errorf("slot start = %v, want %v", slotStart, start)
		}
		if got := slotEnd.Sub(slotStart); got != 30*time.Minute {
			t.Errorf("slot length = %v, want 30m", got)
		}
	}
}

func TestDatePortion(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2024-06-01T10:00:00", "2024-06-01"},
		{"2024-06-01T10:00:00+05:30", "2024-06-01"},
		// No 'T' in the raw input: the whole string is reported back.
		{"2024-06-01 10:00:00", "2024-06-01 10:00:00"},
	}
	for _, tt := range tests {
		if got := datePortion(tt.input); got != tt.want {
			t.Errorf("datePortion(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
