// Package biztime centralizes time handling. Everything is stored and
// transported in UTC; persistence uses Unix milliseconds.
package biztime

import "time"

// NowUTC returns the current time in UTC truncated to millisecond
// precision, the resolution the database keeps.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// ToMillis converts t to Unix milliseconds.
func ToMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMillis converts Unix milliseconds to a UTC time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
