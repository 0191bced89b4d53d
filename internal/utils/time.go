package utils

import (
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// ParseDate parses a strict YYYY-MM-DD calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.UTC)
}

// FormatDate formats t as YYYY-MM-DD, keeping the wall-clock date of t.
func FormatDate(t time.Time) string {
	return t.Format(layoutDate)
}

// IsDate reports whether s is a valid YYYY-MM-DD date.
func IsDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}
