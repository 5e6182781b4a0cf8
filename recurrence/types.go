package recurrence

import (
	"time"

	"github.com/samber/mo"
)

// Rule is a single RRULE/EXRULE: a frequency plus narrowing by-fields and
// an optional end (count or until, never both).
type Rule struct {
	Freq     Frequency
	Interval int
	Dtstart  mo.Option[time.Time] // rule-level start, distinct from Recurrence.Dtstart
	Wkst     mo.Option[Weekday]

	count mo.Option[int]
	until mo.Option[time.Time]

	BySetPos   []int
	ByMonth    []int
	ByMonthDay []int
	ByYearDay  []int
	ByWeekNo   []int
	ByDay      []Weekday
	ByHour     []int
	ByMinute   []int
	BySecond   []int
}

// Options carries the optional fields accepted by NewRule.
type Options struct {
	Dtstart  mo.Option[time.Time]
	Interval int // 0 means 1
	Wkst     mo.Option[Weekday]
	Count    mo.Option[int]
	Until    mo.Option[time.Time]

	BySetPos   []int
	ByMonth    []int
	ByMonthDay []int
	ByYearDay  []int
	ByWeekNo   []int
	ByDay      []Weekday
	ByHour     []int
	ByMinute   []int
	BySecond   []int
}

// Recurrence aggregates inclusion/exclusion rules and explicit dates.
type Recurrence struct {
	Dtstart mo.Option[time.Time]
	Dtend   mo.Option[time.Time]

	RRules  []*Rule
	ExRules []*Rule
	RDates  []time.Time
	ExDates []time.Time
}

// byParam names an integer by-field in wire order. BYDAY sits between
// BYWEEKNO and BYHOUR in the declaration but is always emitted first.
type byParam struct {
	key   string
	field func(r *Rule) *[]int
}

var intByParams = []byParam{
	{"BYSETPOS", func(r *Rule) *[]int { return &r.BySetPos }},
	{"BYMONTH", func(r *Rule) *[]int { return &r.ByMonth }},
	{"BYMONTHDAY", func(r *Rule) *[]int { return &r.ByMonthDay }},
	{"BYYEARDAY", func(r *Rule) *[]int { return &r.ByYearDay }},
	{"BYWEEKNO", func(r *Rule) *[]int { return &r.ByWeekNo }},
	{"BYHOUR", func(r *Rule) *[]int { return &r.ByHour }},
	{"BYMINUTE", func(r *Rule) *[]int { return &r.ByMinute }},
	{"BYSECOND", func(r *Rule) *[]int { return &r.BySecond }},
}

func lookupIntByParam(key string) (byParam, bool) {
	for _, p := range intByParams {
		if p.key == key {
			return p, true
		}
	}
	return byParam{}, false
}
