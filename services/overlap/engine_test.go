package overlap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whenfree/models"
)

// 2026-01-05 is a Monday.
const (
	monday    = "2026-01-05"
	tuesday   = "2026-01-06"
	wednesday = "2026-01-07"
)

func instant(t *testing.T, date string, hour, min int) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(dateLayout, date, time.UTC)
	require.NoError(t, err)
	return d.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func weeklyBlock(owner string, startMin, endMin int, days []time.Weekday, from, until string) models.BusyBlock {
	return models.BusyBlock{
		ID:          owner + "-block",
		OwnerID:     owner,
		StartMinute: startMin,
		EndMinute:   endMin,
		DaysOfWeek:  days,
		ActiveFrom:  from,
		ActiveUntil: until,
	}
}

func TestComputeOverlapsSingleDay(t *testing.T) {
	// User1 busy Monday 09:00-09:50, User2 has no blocks. One-day range with
	// a threshold of 2 splits the day around User1's block.
	usersBlocks := map[string][]models.BusyBlock{
		"user1": {weeklyBlock("user1", 9*60, 9*60+50, []time.Weekday{time.Monday}, "2026-01-01", "")},
		"user2": {},
	}
	rangeStart := instant(t, monday, 0, 0)
	rangeEnd := instant(t, tuesday, 0, 0)

	windows, err := ComputeOverlaps(usersBlocks, rangeStart, rangeEnd, 2)
	require.NoError(t, err)
	require.Len(t, windows, 2)

	assert.Equal(t, rangeStart, windows[0].Start)
	assert.Equal(t, instant(t, monday, 9, 0), windows[0].End)
	assert.Equal(t, []string{"user1", "user2"}, windows[0].FreeUserIDs)
	assert.Equal(t, 2, windows[0].Count)

	assert.Equal(t, instant(t, monday, 9, 50), windows[1].Start)
	assert.Equal(t, rangeEnd, windows[1].End)
	assert.Equal(t, []string{"user1", "user2"}, windows[1].FreeUserIDs)
	assert.Equal(t, 2, windows[1].Count)
}

func TestComputeOverlapsThresholdAboveUserCount(t *testing.T) {
	usersBlocks := map[string][]models.BusyBlock{
		"a": {}, "b": {}, "c": {},
	}
	windows, err := ComputeOverlaps(usersBlocks, instant(t, monday, 0, 0), instant(t, tuesday, 0, 0), 5)
	require.NoError(t, err)
	assert.Empty(t, windows)
}

func TestComputeOverlapsOverlappingBlocksSameUser(t *testing.T) {
	// Two overlapping blocks keep the user continuously busy 09:00-10:30; the
	// earlier block ending at 10:00 must not make the user free early.
	usersBlocks := map[string][]models.BusyBlock{
		"user1": {
			weeklyBlock("user1", 9*60, 10*60, []time.Weekday{time.Monday}, "2026-01-01", ""),
			{
				ID: "user1-late", OwnerID: "user1",
				StartMinute: 9*60 + 30, EndMinute: 10*60 + 30,
				DaysOfWeek: []time.Weekday{time.Monday}, ActiveFrom: "2026-01-01",
			},
		},
	}
	rangeStart := instant(t, monday, 0, 0)
	rangeEnd := instant(t, tuesday, 0, 0)

	windows, err := ComputeOverlaps(usersBlocks, rangeStart, rangeEnd, 1)
	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, instant(t, monday, 9, 0), windows[0].End)
	assert.Equal(t, instant(t, monday, 10, 30), windows[1].Start)
}

func TestComputeOverlapsExpiredBlockContributesNothing(t *testing.T) {
	// activeUntil before the query range: the user is free throughout.
	usersBlocks := map[string][]models.BusyBlock{
		"user1": {weeklyBlock("user1", 9*60, 10*60, []time.Weekday{time.Monday}, "2025-01-06", "2025-06-30")},
	}
	rangeStart := instant(t, monday, 0, 0)
	rangeEnd := instant(t, tuesday, 0, 0)

	windows, err := ComputeOverlaps(usersBlocks, rangeStart, rangeEnd, 1)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, rangeStart, windows[0].Start)
	assert.Equal(t, rangeEnd, windows[0].End)
}

func TestComputeOverlapsCompositionChangeSplitsWindows(t *testing.T) {
	// user1 busy 09:00-10:00, user2 busy 10:00-11:00. With a threshold of 1
	// the free set changes composition at 09:00, 10:00 and 11:00; each change
	// starts a new window even though the threshold holds continuously.
	usersBlocks := map[string][]models.BusyBlock{
		"user1": {weeklyBlock("user1", 9*60, 10*60, []time.Weekday{time.Monday}, "2026-01-01", "")},
		"user2": {weeklyBlock("user2", 10*60, 11*60, []time.Weekday{time.Monday}, "2026-01-01", "")},
	}
	rangeStart := instant(t, monday, 0, 0)
	rangeEnd := instant(t, tuesday, 0, 0)

	windows, err := ComputeOverlaps(usersBlocks, rangeStart, rangeEnd, 1)
	require.NoError(t, err)
	require.Len(t, windows, 4)

	assert.Equal(t, []string{"user1", "user2"}, windows[0].FreeUserIDs)
	assert.Equal(t, []string{"user2"}, windows[1].FreeUserIDs)
	assert.Equal(t, []string{"user1"}, windows[2].FreeUserIDs)
	assert.Equal(t, []string{"user1", "user2"}, windows[3].FreeUserIDs)

	// The block boundary at 10:00 transitions directly: no gap, no overlap.
	assert.Equal(t, instant(t, monday, 10, 0), windows[1].End)
	assert.Equal(t, instant(t, monday, 10, 0), windows[2].Start)
}

func TestComputeOverlapsClipsToRange(t *testing.T) {
	// The occurrence 09:00-10:00 starts before the queried range; the user
	// stays busy until 10:00 inside the range.
	usersBlocks := map[string][]models.BusyBlock{
		"user1": {weeklyBlock("user1", 9*60, 10*60, []time.Weekday{time.Monday}, "2026-01-01", "")},
	}
	windows, err := ComputeOverlaps(usersBlocks, instant(t, monday, 9, 30), instant(t, monday, 12, 0), 1)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, instant(t, monday, 10, 0), windows[0].Start)
	assert.Equal(t, instant(t, monday, 12, 0), windows[0].End)
}

func TestComputeOverlapsClosesAtRangeEnd(t *testing.T) {
	// A window still open at the end of the sweep closes exactly at rangeEnd,
	// not at the last occurrence boundary.
	usersBlocks := map[string][]models.BusyBlock{
		"user1": {weeklyBlock("user1", 9*60, 10*60, []time.Weekday{time.Monday}, "2026-01-01", "")},
	}
	rangeEnd := instant(t, monday, 23, 0)
	windows, err := ComputeOverlaps(usersBlocks, instant(t, monday, 8, 0), rangeEnd, 1)
	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, instant(t, monday, 9, 0), windows[0].End)
	assert.Equal(t, rangeEnd, windows[1].End)
}

func TestComputeOverlapsWeekdayAndActiveFromFiltering(t *testing.T) {
	// A Wednesday-only block never fires on Monday; a block active from
	// Tuesday leaves Monday untouched.
	usersBlocks := map[string][]models.BusyBlock{
		"user1": {
			weeklyBlock("user1", 9*60, 10*60, []time.Weekday{time.Wednesday}, "2026-01-01", ""),
			{
				ID: "user1-tue", OwnerID: "user1",
				StartMinute: 14 * 60, EndMinute: 15 * 60,
				DaysOfWeek: []time.Weekday{time.Monday, time.Tuesday}, ActiveFrom: tuesday,
			},
		},
	}
	rangeStart := instant(t, monday, 0, 0)
	rangeEnd := instant(t, wednesday, 0, 0)

	windows, err := ComputeOverlaps(usersBlocks, rangeStart, rangeEnd, 1)
	require.NoError(t, err)
	require.Len(t, windows, 2)
	// Monday is entirely free; Tuesday splits around 14:00-15:00.
	assert.Equal(t, rangeStart, windows[0].Start)
	assert.Equal(t, instant(t, tuesday, 14, 0), windows[0].End)
	assert.Equal(t, instant(t, tuesday, 15, 0), windows[1].Start)
	assert.Equal(t, rangeEnd, windows[1].End)
}

func TestComputeOverlapsWeeklyRecurrence(t *testing.T) {
	// Mon+Wed recurrence over a full week yields occurrences on both days.
	usersBlocks := map[string][]models.BusyBlock{
		"user1": {weeklyBlock("user1", 9*60, 10*60, []time.Weekday{time.Monday, time.Wednesday}, "2026-01-01", "")},
		"user2": {},
	}
	rangeStart := instant(t, monday, 0, 0)
	rangeEnd := rangeStart.AddDate(0, 0, 7)

	windows, err := ComputeOverlaps(usersBlocks, rangeStart, rangeEnd, 2)
	require.NoError(t, err)
	require.Len(t, windows, 3)
	assert.Equal(t, instant(t, monday, 9, 0), windows[0].End)
	assert.Equal(t, instant(t, monday, 10, 0), windows[1].Start)
	assert.Equal(t, instant(t, wednesday, 9, 0), windows[1].End)
	assert.Equal(t, instant(t, wednesday, 10, 0), windows[2].Start)
	assert.Equal(t, rangeEnd, windows[2].End)
}

func TestComputeOverlapsDeterminism(t *testing.T) {
	usersBlocks := map[string][]models.BusyBlock{
		"user1": {weeklyBlock("user1", 9*60, 10*60, []time.Weekday{time.Monday, time.Friday}, "2026-01-01", "")},
		"user2": {weeklyBlock("user2", 8*60, 12*60, []time.Weekday{time.Wednesday}, "2026-01-01", "")},
		"user3": {},
	}
	rangeStart := instant(t, monday, 0, 0)
	rangeEnd := rangeStart.AddDate(0, 0, 7)

	first, err := ComputeOverlaps(usersBlocks, rangeStart, rangeEnd, 2)
	require.NoError(t, err)
	second, err := ComputeOverlaps(usersBlocks, rangeStart, rangeEnd, 2)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputeOverlapsResultInvariants(t *testing.T) {
	usersBlocks := map[string][]models.BusyBlock{
		"user1": {weeklyBlock("user1", 9*60, 11*60, []time.Weekday{time.Monday, time.Tuesday, time.Wednesday}, "2026-01-01", "")},
		"user2": {weeklyBlock("user2", 10*60, 14*60, []time.Weekday{time.Monday, time.Wednesday}, "2026-01-01", "")},
		"user3": {},
	}
	rangeStart := instant(t, monday, 6, 30)
	rangeEnd := rangeStart.AddDate(0, 0, 5)
	minFree := 2

	windows, err := ComputeOverlaps(usersBlocks, rangeStart, rangeEnd, minFree)
	require.NoError(t, err)
	require.NotEmpty(t, windows)

	for i, w := range windows {
		assert.True(t, w.Start.Before(w.End), "window %d must not be zero-length", i)
		assert.False(t, w.Start.Before(rangeStart), "window %d starts before range", i)
		assert.False(t, w.End.After(rangeEnd), "window %d ends after range", i)
		assert.GreaterOrEqual(t, w.Count, minFree, "window %d below threshold", i)
		assert.Equal(t, len(w.FreeUserIDs), w.Count, "window %d count mismatch", i)
		assert.Contains(t, w.FreeUserIDs, "user3", "zero-block user missing from window %d", i)
		if i > 0 {
			prev := windows[i-1]
			assert.False(t, prev.End.After(w.Start), "windows %d and %d overlap", i-1, i)
			if prev.End.Equal(w.Start) {
				assert.NotEqual(t, prev.FreeUserIDs, w.FreeUserIDs,
					"adjacent windows %d and %d share a free set and should have merged", i-1, i)
			}
		}
	}
}

func TestComputeOverlapsPreconditions(t *testing.T) {
	blocks := map[string][]models.BusyBlock{"user1": {}}
	start := instant(t, monday, 0, 0)

	_, err := ComputeOverlaps(blocks, start, start, 1)
	assert.Error(t, err)

	_, err = ComputeOverlaps(blocks, start.Add(time.Hour), start, 1)
	assert.Error(t, err)

	_, err = ComputeOverlaps(blocks, start, start.Add(time.Hour), 0)
	assert.Error(t, err)
}

func TestComputeOverlapsRejectsMalformedBlock(t *testing.T) {
	blocks := map[string][]models.BusyBlock{
		"user1": {weeklyBlock("user1", 10*60, 9*60, []time.Weekday{time.Monday}, "2026-01-01", "")},
	}
	_, err := ComputeOverlaps(blocks, instant(t, monday, 0, 0), instant(t, tuesday, 0, 0), 1)
	assert.Error(t, err)
}
