package schedule

import "time"

// NowPosition locates the current instant inside the grid. OffsetMinutes is
// the remainder past the start of Block, so a renderer can draw the
// indicator line at sub-block granularity instead of snapping to a block
// boundary.
type NowPosition struct {
	Block         int `json:"block"`
	OffsetMinutes int `json:"offsetMinutes"`
}

// Fraction returns the position as a fractional block index.
func (p NowPosition) Fraction(g Grid) float64 {
	return float64(p.Block) + float64(p.OffsetMinutes)/float64(g.BlockMinutes)
}

// LivePosition maps now into grid coordinates for the viewed day. It reports
// ok=false when the viewed day is not today's calendar date, or when the
// clock has not yet reached DayStartHour; the indicator is never clamped
// into the visible window, since a clamped line would misrepresent the time.
//
// now may arrive in any location; all clock math happens in viewedDay's
// location so the block index matches the schedule's timezone.
func LivePosition(g Grid, viewedDay, now time.Time) (NowPosition, bool) {
	now = now.In(viewedDay.Location())
	if !sameDate(now, viewedDay) {
		return NowPosition{}, false
	}
	if now.Hour() < g.DayStartHour {
		return NowPosition{}, false
	}
	return NowPosition{
		Block:         g.BlockIndex(now),
		OffsetMinutes: now.Minute() % g.BlockMinutes,
	}, true
}
