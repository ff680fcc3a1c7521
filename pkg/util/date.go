package util

import "time"

// DateOnly truncates t to midnight UTC. Event dates are stored and
// compared in this form so date filters behave the same on SQLite and
// Postgres.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day, normalized like DateOnly.
func Today() time.Time {
	return DateOnly(time.Now())
}
