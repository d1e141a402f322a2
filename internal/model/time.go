package model

import (
	"fmt"
	"strconv"
	"strings"
)

// MinuteOfDay parses a wall-clock value into minutes since midnight.
// The API has shipped two representations over time: "HH:MM" strings and
// plain minute offsets ("540"). Both normalize to the same numeric form so
// slot times can be compared and sorted without caring which variant the
// server sent.
func MinuteOfDay(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty time value")
	}

	if h, m, ok := strings.Cut(s, ":"); ok {
		hours, err := strconv.Atoi(h)
		if err != nil {
			return 0, fmt.Errorf("invalid hour in %q", s)
		}
		mins, err := strconv.Atoi(m)
		if err != nil {
			return 0, fmt.Errorf("invalid minute in %q", s)
		}
		if hours < 0 || hours > 23 || mins < 0 || mins > 59 {
			return 0, fmt.Errorf("time %q out of range", s)
		}
		return hours*60 + mins, nil
	}

	mins, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid time value %q", s)
	}
	if mins < 0 || mins >= 24*60 {
		return 0, fmt.Errorf("minute offset %q out of range", s)
	}
	return mins, nil
}

// FormatMinute renders minutes since midnight as "HH:MM".
func FormatMinute(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
