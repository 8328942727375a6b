// Package urgency classifies tasks against their due dates. It is the single
// shared implementation behind both the display badge and the reminder
// dispatcher's candidate window, so calendar-day boundaries cannot drift
// between the two.
package urgency

import (
	"fmt"
	"math"
	"time"

	"taskway/internal/models"
)

// Kind is a discrete urgency label derived from a task's due date.
type Kind string

const (
	None        Kind = "none"
	Overdue     Kind = "overdue"
	DueToday    Kind = "due_today"
	DueTomorrow Kind = "due_tomorrow"
	DueSoon     Kind = "due_soon"
)

// Bucket is an ephemeral classification of a task against "now". DaysLeft is
// only meaningful for DueSoon.
type Bucket struct {
	Kind     Kind
	DaysLeft int
}

func (b Bucket) Label() string {
	switch b.Kind {
	case Overdue:
		return "Overdue"
	case DueToday:
		return "Due Today"
	case DueTomorrow:
		return "Due Tomorrow"
	case DueSoon:
		return fmt.Sprintf("%d days left", b.DaysLeft)
	}
	return ""
}

// startOfDay truncates t to midnight in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// Classify maps a due date and status to an urgency bucket. All calendar
// comparisons happen in loc. Completed tasks and tasks without a due date are
// never urgent, regardless of the due date's value.
func Classify(due *time.Time, status models.TaskStatus, now time.Time, loc *time.Location) Bucket {
	if due == nil || status == models.StatusCompleted {
		return Bucket{Kind: None}
	}

	today := startOfDay(now, loc)
	dueDay := startOfDay(*due, loc)

	switch {
	case dueDay.Before(today):
		return Bucket{Kind: Overdue}
	case dueDay.Equal(today):
		return Bucket{Kind: DueToday}
	case dueDay.Equal(today.AddDate(0, 0, 1)):
		return Bucket{Kind: DueTomorrow}
	}

	// Round guards against DST-shortened or -lengthened days in loc.
	daysLeft := int(math.Round(dueDay.Sub(today).Hours() / 24))
	if daysLeft <= 3 {
		return Bucket{Kind: DueSoon, DaysLeft: daysLeft}
	}
	return Bucket{Kind: None}
}

// Window is the reminder lookahead interval. Both bounds are inclusive,
// matching the range query the dispatcher issues against the store.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowFrom computes the reminder window for an invocation at now:
// from the start of now's calendar day in loc up to now+24h.
func WindowFrom(now time.Time, loc *time.Location) Window {
	return Window{
		Start: startOfDay(now, loc),
		End:   now.Add(24 * time.Hour),
	}
}

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
