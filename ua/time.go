package ua

import "time"

// dateTimeFormat renders DateTime values the way NodeSet2 documents carry
// them: UTC, sub-second digits only when present.
const dateTimeFormat = "2006-01-02T15:04:05.999Z"

// FormatDateTime formats a DateTime value for an XML document.
func FormatDateTime(value time.Time) string {
	return value.UTC().Format(dateTimeFormat)
}

// ParseDateTime parses a DateTime value from an XML document.
func ParseDateTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}
