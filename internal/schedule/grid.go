package schedule

import (
	"fmt"
	"time"
)

// Grid defines the discrete time grid for day views: the display window in
// whole hours and the size of one block in minutes. BlockMinutes must evenly
// divide 60; config validation enforces this before a Grid is constructed.
type Grid struct {
	DayStartHour int
	DayEndHour   int
	BlockMinutes int
}

// TimeBlock is one fixed-size slice of the display window.
type TimeBlock struct {
	Index  int    `json:"index"`
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
	Label  string `json:"label"`
}

func (g Grid) BlocksPerHour() int {
	return 60 / g.BlockMinutes
}

func (g Grid) BlockCount() int {
	return (g.DayEndHour - g.DayStartHour) * g.BlocksPerHour()
}

// BlockIndex converts a timestamp to its block index. The result is not
// clamped: a time before DayStartHour yields a negative index, one at or
// after DayEndHour yields an index >= BlockCount(). Callers that need a
// window-bounded value must check the range themselves.
func (g Grid) BlockIndex(t time.Time) int {
	return (t.Hour()-g.DayStartHour)*g.BlocksPerHour() + t.Minute()/g.BlockMinutes
}

// BlockStart reverses the index arithmetic: the wall-clock hour and minute
// at which block i begins.
func (g Grid) BlockStart(i int) (hour, minute int) {
	hour = g.DayStartHour + i/g.BlocksPerHour()
	minute = (i % g.BlocksPerHour()) * g.BlockMinutes
	return hour, minute
}

// BlockLabel renders the start of block i as a 12-hour clock label,
// e.g. "9:00 am" or "1:30 pm".
func (g Grid) BlockLabel(i int) string {
	hour, minute := g.BlockStart(i)
	ampm := "am"
	if hour >= 12 {
		ampm = "pm"
	}
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, minute, ampm)
}

// Blocks materializes the whole grid, one TimeBlock per slot.
func (g Grid) Blocks() []TimeBlock {
	count := g.BlockCount()
	blocks := make([]TimeBlock, 0, count)
	for i := 0; i < count; i++ {
		hour, minute := g.BlockStart(i)
		blocks = append(blocks, TimeBlock{
			Index:  i,
			Hour:   hour,
			Minute: minute,
			Label:  g.BlockLabel(i),
		})
	}
	return blocks
}
