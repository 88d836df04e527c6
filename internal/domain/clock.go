package domain

import (
	"fmt"
	"strings"
	"time"
)

// ClockTime is a time of day expressed as minutes after midnight.
type ClockTime int

const minutesPerDay = 24 * 60

// ParseClockTime parses "HH:MM" (24h). "24:00" is accepted as end of day.
func ParseClockTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	if s == "24:00" {
		return ClockTime(minutesPerDay), nil
	}

	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("parse clock time %q: %w", s, err)
	}

	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

// Add returns the clock time shifted by the given minutes, without wrapping past midnight.
func (c ClockTime) Add(minutes int) ClockTime { return c + ClockTime(minutes) }

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// TimeWindow is an inclusive (start, end) clock-time interval.
type TimeWindow struct {
	Start ClockTime `json:"start"`
	End   ClockTime `json:"end"`
}

// Contains reports whether t falls inside the window.
func (w TimeWindow) Contains(t ClockTime) bool { return t >= w.Start && t <= w.End }

// Minutes returns the window length.
func (w TimeWindow) Minutes() int { return int(w.End - w.Start) }

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

func (c *ClockTime) UnmarshalJSON(b []byte) error {
	parsed, err := ParseClockTime(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
