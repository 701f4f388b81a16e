package util

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

var ageRegex = regexp.MustCompile(`^(\d+)([smhd])$`)

// ParseAge parses an age string (e.g., "30s", "60m", "24h", "7d") into a duration
func ParseAge(age string) (time.Duration, error) {
	matches := ageRegex.FindStringSubmatch(age)
	if matches == nil {
		return 0, errors.New("invalid age format. Use: 30s, 60m, 24h, or 7d")
	}

	value, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, err
	}
	if value <= 0 {
		return 0, errors.New("age value must be greater than 0")
	}

	switch matches[2] {
	case "s":
		return time.Duration(value) * time.Second, nil
	case "m":
		return time.Duration(value) * time.Minute, nil
	case "h":
		return time.Duration(value) * time.Hour, nil
	default:
		return time.Duration(value) * 24 * time.Hour, nil
	}
}

// FormatAge renders how long ago t was, e.g. "5m ago"
func FormatAge(t time.Time) string {
	d := now().Sub(t)
	switch {
	case d < time.Minute:
		return strconv.Itoa(int(d.Seconds())) + "s ago"
	case d < time.Hour:
		return strconv.Itoa(int(d.Minutes())) + "m ago"
	case d < 24*time.Hour:
		return strconv.Itoa(int(d.Hours())) + "h ago"
	default:
		return strconv.Itoa(int(d.Hours()/24)) + "d ago"
	}
}
