package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const maxOffsetHours = 14

// parseLocation accepts an IANA name ("Asia/Bangkok"), "UTC"/"GMT",
// or a fixed offset ("UTC+7", "+07:00", "UTC-3:30").
// Fixed offsets ignore daylight saving time.
func parseLocation(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)

	switch strings.ToUpper(tz) {
	case "", "UTC", "GMT", "ETC/UTC":
		return time.UTC, nil
	}

	if loc, err := time.LoadLocation(tz); err == nil {
		return loc, nil
	}

	offset, err := parseOffset(tz)
	if err != nil {
		return nil, fmt.Errorf("unsupported timezone %q: %w", tz, err)
	}

	return time.FixedZone(offsetName(offset), offset), nil
}

// parseOffset returns the offset east of UTC in seconds.
func parseOffset(s string) (int, error) {
	if len(s) >= 3 && strings.EqualFold(s[:3], "UTC") {
		s = s[3:]
	}
	if len(s) < 2 {
		return 0, fmt.Errorf("missing offset")
	}

	sign := 1
	switch s[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return 0, fmt.Errorf("offset must start with + or -")
	}

	hh, mm, hasMinutes := strings.Cut(s[1:], ":")
	if !hasMinutes {
		mm = "0"
	}

	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > maxOffsetHours {
		return 0, fmt.Errorf("bad hours %q", hh)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m >= 60 {
		return 0, fmt.Errorf("bad minutes %q", mm)
	}

	return sign * (h*3600 + m*60), nil
}

// offsetName formats an offset as "UTC+07:00".
func offsetName(offset int) string {
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, offset/3600, offset%3600/60)
}
