package model

import (
	"fmt"
)

// ClockTime is a naive wall-clock time of day stored as minutes since
// midnight. All lesson and availability times in the system are ClockTimes;
// no timezone is attached to them.
type ClockTime int

// ParseClockTime parses a "HH:MM" 24-hour string. Trailing seconds or
// fractions ("09:00:00") are ignored, which is how the store renders
// time columns.
func ParseClockTime(s string) (ClockTime, error) {
	if len(s) < 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	var hour, minute int
	if _, err := fmt.Sscanf(s[:5], "%02d:%02d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", s)
	}
	return ClockTime(hour*60 + minute), nil
}

// MustClockTime is ParseClockTime that panics. For constants and tests.
func MustClockTime(s string) ClockTime {
	ct, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return ct
}

func (ct ClockTime) Hour() int   { return int(ct) / 60 }
func (ct ClockTime) Minute() int { return int(ct) % 60 }

// Add returns the clock time shifted by the given number of minutes.
// The result may pass midnight; callers comparing intervals within one
// day rely on that (end of a 23:30 lesson sorts after any same-day time).
func (ct ClockTime) Add(minutes int) ClockTime {
	return ct + ClockTime(minutes)
}

func (ct ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", ct.Hour(), ct.Minute())
}

func (ct ClockTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + ct.String() + `"`), nil
}

func (ct *ClockTime) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid time %s: want quoted HH:MM", data)
	}
	parsed, err := ParseClockTime(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*ct = parsed
	return nil
}
