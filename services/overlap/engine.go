package overlap

import (
	"fmt"
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"whenfree/models"
)

const dateLayout = "2006-01-02"

// occurrence is one concrete dated instantiation of a busy block. Occurrences
// exist only during a computation and are never persisted.
type occurrence struct {
	start time.Time
	end   time.Time
}

// event marks a busy-reference-count change for one user at one instant.
type event struct {
	ts     time.Time
	userID string
	delta  int
}

// ComputeOverlaps finds the maximal disjoint windows inside [rangeStart,
// rangeEnd) during which at least minFreeUsers of the queried users are
// simultaneously free. usersBlocks maps every queried user to their busy
// blocks; a user mapped to an empty list is free for the whole range.
//
// The computation is pure: it keeps no state across calls and the same input
// always yields the same windows. Blocks are assumed to have passed
// ValidateBlock; a malformed block aborts the call with an error rather than
// producing partial results.
func ComputeOverlaps(usersBlocks map[string][]models.BusyBlock, rangeStart, rangeEnd time.Time, minFreeUsers int) ([]models.OverlapWindow, error) {
	if !rangeStart.Before(rangeEnd) {
		return nil, fmt.Errorf("overlap: rangeStart %s must be before rangeEnd %s",
			rangeStart.Format(time.RFC3339), rangeEnd.Format(time.RFC3339))
	}
	if minFreeUsers < 1 {
		return nil, fmt.Errorf("overlap: minFreeUsers must be at least 1, got %d", minFreeUsers)
	}
	rangeStart = rangeStart.UTC()
	rangeEnd = rangeEnd.UTC()

	userIDs := make([]string, 0, len(usersBlocks))
	for id := range usersBlocks {
		userIDs = append(userIDs, id)
	}
	sort.Strings(userIDs)

	// A threshold above the queried population can never be met.
	if minFreeUsers > len(userIDs) {
		return nil, nil
	}

	events, err := buildEvents(usersBlocks, userIDs, rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].ts.Equal(events[j].ts) {
			return events[i].ts.Before(events[j].ts)
		}
		// Decrements before increments so a block ending exactly when another
		// begins does not suppress a transition.
		return events[i].delta < events[j].delta
	})

	return sweep(events, userIDs, rangeStart, rangeEnd, minFreeUsers), nil
}

// buildEvents expands every block into occurrences and converts the ones
// intersecting the range into clipped sweep events.
func buildEvents(usersBlocks map[string][]models.BusyBlock, userIDs []string, rangeStart, rangeEnd time.Time) ([]event, error) {
	var events []event
	for _, uid := range userIDs {
		for _, b := range usersBlocks[uid] {
			occs, err := expandBlock(b, rangeStart, rangeEnd)
			if err != nil {
				return nil, fmt.Errorf("overlap: block %q: %w", b.ID, err)
			}
			for _, oc := range occs {
				s, e := oc.start, oc.end
				if s.Before(rangeStart) {
					s = rangeStart
				}
				if e.After(rangeEnd) {
					e = rangeEnd
				}
				if !s.Before(e) {
					continue
				}
				events = append(events,
					event{ts: s, userID: uid, delta: +1},
					event{ts: e, userID: uid, delta: -1},
				)
			}
		}
	}
	return events, nil
}

// expandBlock enumerates the concrete occurrences of one block that intersect
// [rangeStart, rangeEnd). Recurrence is a weekly rule over the block's
// weekdays, bounded by ActiveFrom/ActiveUntil; the day frame is UTC.
func expandBlock(b models.BusyBlock, rangeStart, rangeEnd time.Time) ([]occurrence, error) {
	if err := ValidateBlock(b); err != nil {
		return nil, err
	}

	activeFrom, err := time.ParseInLocation(dateLayout, b.ActiveFrom, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("parse activeFrom: %w", err)
	}
	duration := time.Duration(b.EndMinute-b.StartMinute) * time.Minute

	opt := rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   activeFrom.Add(time.Duration(b.StartMinute) * time.Minute),
		Byweekday: toRRuleWeekdays(b.DaysOfWeek),
	}
	if b.ActiveUntil != "" {
		activeUntil, err := time.ParseInLocation(dateLayout, b.ActiveUntil, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse activeUntil: %w", err)
		}
		// Until bounds occurrence starts; the last permitted start falls on the
		// ActiveUntil date itself (inclusive).
		opt.Until = activeUntil.Add(time.Duration(b.StartMinute) * time.Minute)
	}
	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("build recurrence rule: %w", err)
	}

	// Blocks never span midnight, so any occurrence intersecting rangeStart
	// starts no earlier than the beginning of rangeStart's UTC day.
	searchStart := rangeStart.Truncate(24 * time.Hour)

	var occs []occurrence
	for _, s := range rule.Between(searchStart, rangeEnd, true) {
		e := s.Add(duration)
		if s.Before(rangeEnd) && e.After(rangeStart) {
			occs = append(occs, occurrence{start: s, end: e})
		}
	}
	return occs, nil
}

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

func toRRuleWeekdays(days []time.Weekday) []rrule.Weekday {
	out := make([]rrule.Weekday, 0, len(days))
	for _, d := range days {
		out = append(out, rruleWeekdays[d])
	}
	return out
}

// sweep walks the sorted events and extracts the qualifying windows. A user is
// busy at an instant iff their reference count of covering occurrences is
// positive; overlapping occurrences for one user therefore never free that
// user early. All deltas sharing a timestamp are applied as a group, so the
// step function only changes at event instants.
func sweep(events []event, userIDs []string, rangeStart, rangeEnd time.Time, minFreeUsers int) []models.OverlapWindow {
	busy := make(map[string]int, len(userIDs))
	var out []models.OverlapWindow
	var open *models.OverlapWindow

	segment := func(segStart, segEnd time.Time) {
		if !segStart.Before(segEnd) {
			return
		}
		free := freeUsers(userIDs, busy)
		if len(free) < minFreeUsers {
			if open != nil {
				out = append(out, *open)
				open = nil
			}
			return
		}
		if open != nil && sameMembers(open.FreeUserIDs, free) {
			open.End = segEnd
			return
		}
		// A composition change while the threshold holds starts a new window:
		// the free-user set is part of the window's identity.
		if open != nil {
			out = append(out, *open)
		}
		open = &models.OverlapWindow{Start: segStart, End: segEnd, FreeUserIDs: free, Count: len(free)}
	}

	cursor := rangeStart
	for i := 0; i < len(events); {
		ts := events[i].ts
		segment(cursor, ts)
		for i < len(events) && events[i].ts.Equal(ts) {
			busy[events[i].userID] += events[i].delta
			i++
		}
		cursor = ts
	}
	// A window still open at the end of the sweep closes exactly at the
	// requested range boundary.
	segment(cursor, rangeEnd)
	if open != nil {
		out = append(out, *open)
	}
	return out
}

func freeUsers(userIDs []string, busy map[string]int) []string {
	free := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		if busy[id] == 0 {
			free = append(free, id)
		}
	}
	return free
}

func sameMembers(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
