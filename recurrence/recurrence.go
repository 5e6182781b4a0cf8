package recurrence

import (
	"slices"
	"time"
)

// Copy deep-copies the aggregate, including every rule.
func (rec *Recurrence) Copy() *Recurrence {
	out := &Recurrence{
		Dtstart: rec.Dtstart,
		Dtend:   rec.Dtend,
		RDates:  slices.Clone(rec.RDates),
		ExDates: slices.Clone(rec.ExDates),
	}
	for _, r := range rec.RRules {
		out.RRules = append(out.RRules, r.Copy())
	}
	for _, r := range rec.ExRules {
		out.ExRules = append(out.ExRules, r.Copy())
	}
	return out
}

// IsEmpty reports whether no rule or explicit date is set.
func (rec *Recurrence) IsEmpty() bool {
	return len(rec.RRules) == 0 && len(rec.ExRules) == 0 &&
		len(rec.RDates) == 0 && len(rec.ExDates) == 0
}

// Equal compares two aggregates field by field using Rule.Equal and
// time.Time.Equal.
func (rec *Recurrence) Equal(other *Recurrence) bool {
	if rec == nil || other == nil {
		return rec == other
	}
	if !optionalTimeEqual(rec.Dtstart, other.Dtstart) || !optionalTimeEqual(rec.Dtend, other.Dtend) {
		return false
	}
	ruleEq := func(a, b *Rule) bool { return a.Equal(b) }
	timeEq := func(a, b time.Time) bool { return a.Equal(b) }
	return slices.EqualFunc(rec.RRules, other.RRules, ruleEq) &&
		slices.EqualFunc(rec.ExRules, other.ExRules, ruleEq) &&
		slices.EqualFunc(rec.RDates, other.RDates, timeEq) &&
		slices.EqualFunc(rec.ExDates, other.ExDates, timeEq)
}

// Serialize renders the aggregate in the canonical text form.
func (rec *Recurrence) Serialize() string {
	return Serialize(rec)
}

func (rec *Recurrence) asRecurrence() *Recurrence {
	return rec
}
