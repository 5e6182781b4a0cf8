package recurrence

import (
	"fmt"
	"slices"
	"time"

	"github.com/samber/mo"
	"github.com/teambition/rrule-go"
)

var rruleWeekdays = []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA, rrule.SU}

var rruleFrequencies = map[Frequency]rrule.Frequency{
	Yearly:   rrule.YEARLY,
	Monthly:  rrule.MONTHLY,
	Weekly:   rrule.WEEKLY,
	Daily:    rrule.DAILY,
	Hourly:   rrule.HOURLY,
	Minutely: rrule.MINUTELY,
	Secondly: rrule.SECONDLY,
}

// ROption converts the rule into rrule-go options so callers that need
// occurrence expansion can hand it to rrule.NewRRule.
func (r *Rule) ROption() rrule.ROption {
	opt := rrule.ROption{
		Freq:       rruleFrequencies[r.Freq],
		Interval:   r.Interval,
		Dtstart:    r.Dtstart.OrEmpty(),
		Count:      r.count.OrEmpty(),
		Until:      r.until.OrEmpty(),
		Bysetpos:   slices.Clone(r.BySetPos),
		Bymonth:    slices.Clone(r.ByMonth),
		Bymonthday: slices.Clone(r.ByMonthDay),
		Byyearday:  slices.Clone(r.ByYearDay),
		Byweekno:   slices.Clone(r.ByWeekNo),
		Byhour:     slices.Clone(r.ByHour),
		Byminute:   slices.Clone(r.ByMinute),
		Bysecond:   slices.Clone(r.BySecond),
	}
	if w, ok := r.Wkst.Get(); ok {
		opt.Wkst = rruleWeekdays[w.Number]
	}
	for _, w := range r.ByDay {
		opt.Byweekday = append(opt.Byweekday, rruleWeekdays[w.Number].Nth(w.Index))
	}
	return opt
}

// RuleFromROption builds a rule from rrule-go options. rrule-go cannot
// tell an explicit Monday week start from the default, so WKST is only
// carried over for other days.
func RuleFromROption(opt *rrule.ROption) (*Rule, error) {
	var freq Frequency = -1
	for f, rf := range rruleFrequencies {
		if rf == opt.Freq {
			freq = f
		}
	}
	if !freq.Valid() {
		return nil, fmt.Errorf("%w: rrule frequency %v", ErrInvalidRule, opt.Freq)
	}

	opts := Options{
		Interval:   opt.Interval,
		BySetPos:   opt.Bysetpos,
		ByMonth:    opt.Bymonth,
		ByMonthDay: opt.Bymonthday,
		ByYearDay:  opt.Byyearday,
		ByWeekNo:   opt.Byweekno,
		ByHour:     opt.Byhour,
		ByMinute:   opt.Byminute,
		BySecond:   opt.Bysecond,
	}
	if !opt.Dtstart.IsZero() {
		opts.Dtstart = mo.Some(opt.Dtstart)
	}
	if opt.Count > 0 {
		opts.Count = mo.Some(opt.Count)
	} else if !opt.Until.IsZero() {
		opts.Until = mo.Some[time.Time](opt.Until)
	}
	if day := opt.Wkst.Day(); day != 0 {
		opts.Wkst = mo.Some(Weekday{Number: day})
	}
	for i := range opt.Byweekday {
		w := &opt.Byweekday[i]
		opts.ByDay = append(opts.ByDay, Weekday{Number: w.Day(), Index: w.N()})
	}
	return NewRule(freq, opts)
}
