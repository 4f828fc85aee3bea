package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// jst is Japan Standard Time, the calendar the forecast page publishes in.
var jst = time.FixedZone("JST", 9*60*60)

// clock is a package-level time source so tests can freeze time via SetClock.
// Production code uses the real clock; tests inject a fake for deterministic output.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source for report dating. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// ReportDate returns today's date in Japan Standard Time, formatted as
// YYYY-MM-DD. The summary prompt pins this date so the model cannot invent
// its own notion of "today".
func ReportDate() string {
	return clock.Now().In(jst).Format("2006-01-02")
}
