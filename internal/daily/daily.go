// internal/daily/daily.go
//
// Calendar helpers for the daily puzzle.
//
// Every player must see the same board on the same day, so all dates are
// taken in one reference time zone (America/Los_Angeles by default) rather
// than the player's local zone or UTC.

package daily

import (
	"fmt"
	"time"
	_ "time/tzdata" // reference zone must resolve on hosts without zoneinfo
)

const (
	DefaultZone  = "America/Los_Angeles"
	DefaultStart = "2025-07-24"
	dateLayout   = "2006-01-02"
)

// Clock pins the reference zone and the date of puzzle #1.
type Clock struct {
	Loc   *time.Location
	Start time.Time // midnight of puzzle #1, in Loc
	Now   func() time.Time
}

// NewClock resolves zone and start ("YYYY-MM-DD"); empty values use the defaults.
func NewClock(zone, start string) (*Clock, error) {
	if zone == "" {
		zone = DefaultZone
	}
	if start == "" {
		start = DefaultStart
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("puzzle zone %q: %w", zone, err)
	}
	s, err := time.ParseInLocation(dateLayout, start, loc)
	if err != nil {
		return nil, fmt.Errorf("puzzle start %q: %w", start, err)
	}
	return &Clock{Loc: loc, Start: s, Now: time.Now}, nil
}

// DateKey returns YYYY-MM-DD for t in the reference zone.
func (c *Clock) DateKey(t time.Time) string { return DateKey(t, c.Loc) }

// Seed returns the generation seed for t in the reference zone.
func (c *Clock) Seed(t time.Time) uint32 { return Seed(t, c.Loc) }

// PuzzleNumber returns the 1-based puzzle number for t.
func (c *Clock) PuzzleNumber(t time.Time) int { return PuzzleNumber(t, c.Loc, c.Start) }

// DateKey returns YYYY-MM-DD for t in loc.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateLayout)
}

// Seed concatenates year, zero-padded month and zero-padded day of t in loc
// into one integer, e.g. 2025-07-04 → 20250704.
func Seed(t time.Time, loc *time.Location) uint32 {
	y, m, d := t.In(loc).Date()
	return uint32(y*10000 + int(m)*100 + d)
}

// PuzzleNumber counts calendar days from start to t (both in loc), starting at 1.
// Day arithmetic is done on UTC midnights so DST shifts never skew the count.
func PuzzleNumber(t time.Time, loc *time.Location, start time.Time) int {
	ty, tm, td := t.In(loc).Date()
	sy, sm, sd := start.In(loc).Date()
	today := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	first := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	return int(today.Sub(first).Hours()/24) + 1
}
