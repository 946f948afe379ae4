package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLivePosition_OtherDayHasNoIndicator(t *testing.T) {
	g := testGrid()
	viewed := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)

	_, ok := LivePosition(g, viewed, now)
	assert.False(t, ok)
}

func TestLivePosition_BeforeWindowHasNoIndicator(t *testing.T) {
	g := testGrid()
	day := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 3, 8, 59, 0, 0, time.UTC)

	// A negative offset must not be clamped into the visible area.
	_, ok := LivePosition(g, day, now)
	assert.False(t, ok)
}

func TestLivePosition_SubBlockOffset(t *testing.T) {
	g := testGrid()
	day := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 3, 9, 37, 0, 0, time.UTC)

	pos, ok := LivePosition(g, day, now)
	require.True(t, ok)
	assert.Equal(t, 3, pos.Block)
	assert.Equal(t, 7, pos.OffsetMinutes)
	assert.InDelta(t, 3.7, pos.Fraction(g), 1e-9)
}

func TestLivePosition_ExactBlockBoundary(t *testing.T) {
	g := testGrid()
	day := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)

	pos, ok := LivePosition(g, day, now)
	require.True(t, ok)
	assert.Equal(t, 0, pos.Block)
	assert.Equal(t, 0, pos.OffsetMinutes)
}

func TestLivePosition_CallerClockInOtherZone(t *testing.T) {
	// The same instant expressed in a machine timezone five hours behind
	// the schedule's must land on the same block as the UTC form.
	g := testGrid()
	day := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC).
		In(time.FixedZone("UTC-5", -5*60*60))

	pos, ok := LivePosition(g, day, now)
	require.True(t, ok)
	assert.Equal(t, 6, pos.Block)
	assert.Equal(t, 0, pos.OffsetMinutes)
}

func TestLivePosition_AfterWindowStillReported(t *testing.T) {
	// Past DayEndHour the position is out of range but defined; the
	// renderer decides whether to draw it.
	g := testGrid()
	day := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 3, 20, 15, 0, 0, time.UTC)

	pos, ok := LivePosition(g, day, now)
	require.True(t, ok)
	assert.GreaterOrEqual(t, pos.Block, g.BlockCount())
}
