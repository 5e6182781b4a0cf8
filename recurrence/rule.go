package recurrence

import (
	"fmt"
	"slices"
	"time"

	"github.com/samber/mo"
)

// NewRule validates opts and builds a rule. Interval 0 defaults to 1;
// negative intervals, non-positive counts, count together with until and
// out-of-range weekdays are rejected.
func NewRule(freq Frequency, opts Options) (*Rule, error) {
	if !freq.Valid() {
		return nil, fmt.Errorf("%w: frequency %d", ErrInvalidRule, int(freq))
	}
	if opts.Interval < 0 {
		return nil, fmt.Errorf("%w: negative interval %d", ErrInvalidRule, opts.Interval)
	}
	if opts.Count.IsPresent() && opts.Until.IsPresent() {
		return nil, fmt.Errorf("%w: count and until are mutually exclusive", ErrInvalidRule)
	}
	if n, ok := opts.Count.Get(); ok && n < 1 {
		return nil, fmt.Errorf("%w: count must be positive, got %d", ErrInvalidRule, n)
	}
	if w, ok := opts.Wkst.Get(); ok && !w.Valid() {
		return nil, fmt.Errorf("%w: wkst %d", ErrInvalidRule, w.Number)
	}
	for _, w := range opts.ByDay {
		if !w.Valid() {
			return nil, fmt.Errorf("%w: byday weekday %d", ErrInvalidRule, w.Number)
		}
	}

	interval := opts.Interval
	if interval == 0 {
		interval = 1
	}

	r := &Rule{
		Freq:       freq,
		Interval:   interval,
		Dtstart:    opts.Dtstart,
		Wkst:       opts.Wkst,
		count:      opts.Count,
		until:      opts.Until,
		BySetPos:   slices.Clone(opts.BySetPos),
		ByMonth:    slices.Clone(opts.ByMonth),
		ByMonthDay: slices.Clone(opts.ByMonthDay),
		ByYearDay:  slices.Clone(opts.ByYearDay),
		ByWeekNo:   slices.Clone(opts.ByWeekNo),
		ByDay:      slices.Clone(opts.ByDay),
		ByHour:     slices.Clone(opts.ByHour),
		ByMinute:   slices.Clone(opts.ByMinute),
		BySecond:   slices.Clone(opts.BySecond),
	}
	return r, nil
}

// MustRule is NewRule for statically known options.
func MustRule(freq Frequency, opts Options) *Rule {
	r, err := NewRule(freq, opts)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Rule) Count() mo.Option[int] {
	return r.count
}

func (r *Rule) Until() mo.Option[time.Time] {
	return r.until
}

// SetCount ends the rule after n occurrences and clears until.
func (r *Rule) SetCount(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: count must be positive, got %d", ErrInvalidRule, n)
	}
	r.count = mo.Some(n)
	r.until = mo.None[time.Time]()
	return nil
}

// SetUntil ends the rule at t and clears count.
func (r *Rule) SetUntil(t time.Time) {
	r.until = mo.Some(t)
	r.count = mo.None[int]()
}

// ClearEnd makes the rule repeat forever.
func (r *Rule) ClearEnd() {
	r.count = mo.None[int]()
	r.until = mo.None[time.Time]()
}

// Copy returns a deep copy; by-field slices are not shared.
func (r *Rule) Copy() *Rule {
	out := *r
	out.BySetPos = slices.Clone(r.BySetPos)
	out.ByMonth = slices.Clone(r.ByMonth)
	out.ByMonthDay = slices.Clone(r.ByMonthDay)
	out.ByYearDay = slices.Clone(r.ByYearDay)
	out.ByWeekNo = slices.Clone(r.ByWeekNo)
	out.ByDay = slices.Clone(r.ByDay)
	out.ByHour = slices.Clone(r.ByHour)
	out.ByMinute = slices.Clone(r.ByMinute)
	out.BySecond = slices.Clone(r.BySecond)
	return &out
}

// Update replaces every field of r with a copy of other. Editors use it to
// apply a draft rule onto the live one.
func (r *Rule) Update(other *Rule) {
	*r = *other.Copy()
}

// Equal reports whether both rules carry the same values. Times compare
// with time.Time.Equal, so the same instant in different zones is equal.
func (r *Rule) Equal(other *Rule) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.Freq != other.Freq || r.Interval != other.Interval {
		return false
	}
	if !optionalTimeEqual(r.Dtstart, other.Dtstart) || !optionalTimeEqual(r.until, other.until) {
		return false
	}
	if r.count != other.count || r.Wkst != other.Wkst {
		return false
	}
	return slices.Equal(r.BySetPos, other.BySetPos) &&
		slices.Equal(r.ByMonth, other.ByMonth) &&
		slices.Equal(r.ByMonthDay, other.ByMonthDay) &&
		slices.Equal(r.ByYearDay, other.ByYearDay) &&
		slices.Equal(r.ByWeekNo, other.ByWeekNo) &&
		slices.Equal(r.ByDay, other.ByDay) &&
		slices.Equal(r.ByHour, other.ByHour) &&
		slices.Equal(r.ByMinute, other.ByMinute) &&
		slices.Equal(r.BySecond, other.BySecond)
}

func optionalTimeEqual(a, b mo.Option[time.Time]) bool {
	ta, okA := a.Get()
	tb, okB := b.Get()
	if okA != okB {
		return false
	}
	return !okA || ta.Equal(tb)
}
