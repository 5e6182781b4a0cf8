package xcal

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/samber/mo"

	"github.com/cyp0633/librecur/recurrence"
)

type intPart struct {
	tag   string
	field func(*recurrence.Rule) []int
	set   func(*recurrence.Options) *[]int
}

// intParts follows the element order of the RFC 6321 recur schema; byday
// goes between byhour and bymonthday.
var intParts = []intPart{
	{"bysecond", func(r *recurrence.Rule) []int { return r.BySecond }, func(o *recurrence.Options) *[]int { return &o.BySecond }},
	{"byminute", func(r *recurrence.Rule) []int { return r.ByMinute }, func(o *recurrence.Options) *[]int { return &o.ByMinute }},
	{"byhour", func(r *recurrence.Rule) []int { return r.ByHour }, func(o *recurrence.Options) *[]int { return &o.ByHour }},
	{"bymonthday", func(r *recurrence.Rule) []int { return r.ByMonthDay }, func(o *recurrence.Options) *[]int { return &o.ByMonthDay }},
	{"byyearday", func(r *recurrence.Rule) []int { return r.ByYearDay }, func(o *recurrence.Options) *[]int { return &o.ByYearDay }},
	{"byweekno", func(r *recurrence.Rule) []int { return r.ByWeekNo }, func(o *recurrence.Options) *[]int { return &o.ByWeekNo }},
	{"bymonth", func(r *recurrence.Rule) []int { return r.ByMonth }, func(o *recurrence.Options) *[]int { return &o.ByMonth }},
	{"bysetpos", func(r *recurrence.Rule) []int { return r.BySetPos }, func(o *recurrence.Options) *[]int { return &o.BySetPos }},
}

func lookupIntPart(tag string) (intPart, bool) {
	for _, p := range intParts {
		if p.tag == tag {
			return p, true
		}
	}
	return intPart{}, false
}

// EncodeRule builds the <recur> element for r.
func EncodeRule(r *recurrence.Rule) *etree.Element {
	recur := etree.NewElement(TagRecur)
	recur.CreateElement("freq").SetText(r.Freq.String())

	if n, ok := r.Count().Get(); ok {
		recur.CreateElement("count").SetText(strconv.Itoa(n))
	} else if t, ok := r.Until().Get(); ok {
		recur.CreateElement("until").SetText(formatDateTime(t))
	}
	if r.Interval != 1 {
		recur.CreateElement("interval").SetText(strconv.Itoa(r.Interval))
	}

	for _, p := range intParts {
		if p.tag == "bymonthday" {
			for _, w := range r.ByDay {
				recur.CreateElement("byday").SetText(w.String())
			}
		}
		for _, v := range p.field(r) {
			recur.CreateElement(p.tag).SetText(strconv.Itoa(v))
		}
	}

	if w, ok := r.Wkst.Get(); ok {
		recur.CreateElement("wkst").SetText(w.Code())
	}
	if t, ok := r.Dtstart.Get(); ok {
		recur.CreateElement(TagRuleStart).SetText(formatDateTime(t))
	}
	return recur
}

// DecodeRule reads a <recur> element. Unlike the text decoder it rejects
// unknown frequencies and non-integer by-values; unknown child elements
// are skipped. Local date-times are read in loc.
func DecodeRule(recur *etree.Element, loc *time.Location) (*recurrence.Rule, error) {
	var (
		opts    recurrence.Options
		freq    recurrence.Frequency
		hasFreq bool
	)

	for _, child := range recur.ChildElements() {
		tag := strings.ToLower(child.Tag)
		value := strings.TrimSpace(child.Text())

		switch tag {
		case "freq":
			f, ok := recurrence.ParseFrequency(value)
			if !ok {
				return nil, &recurrence.ParseError{Property: tag, Value: value, Err: recurrence.ErrUnknownFrequency}
			}
			freq, hasFreq = f, true
		case "until", TagRuleStart:
			t, err := parseDateTime(tag, value, loc)
			if err != nil {
				return nil, err
			}
			if tag == "until" {
				opts.Until = mo.Some(t)
			} else {
				opts.Dtstart = mo.Some(t)
			}
		case "count", "interval":
			n, err := parseInt(tag, value)
			if err != nil {
				return nil, err
			}
			if tag == "count" {
				opts.Count = mo.Some(n)
			} else {
				opts.Interval = n
			}
		case "wkst":
			w, err := recurrence.ParseWeekday(value)
			if err != nil {
				return nil, err
			}
			opts.Wkst = mo.Some(w.WithIndex(0))
		case "byday":
			w, err := recurrence.ParseWeekday(value)
			if err != nil {
				return nil, err
			}
			opts.ByDay = append(opts.ByDay, w)
		default:
			p, ok := lookupIntPart(tag)
			if !ok {
				continue
			}
			n, err := parseInt(tag, value)
			if err != nil {
				return nil, err
			}
			dst := p.set(&opts)
			*dst = append(*dst, n)
		}
	}

	if !hasFreq {
		return nil, fmt.Errorf("%w: recur without freq", recurrence.ErrInvalidRule)
	}
	return recurrence.NewRule(freq, opts)
}

func parseInt(tag, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &recurrence.ParseError{Property: tag, Value: value, Err: recurrence.ErrInvalidRule}
	}
	return n, nil
}

func formatDateTime(t time.Time) string {
	return t.UTC().Format(dateTimeLayout)
}

// parseDateTime accepts UTC and floating date-times as well as plain dates.
func parseDateTime(tag, value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(dateTimeLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(localDateTimeLayout, value, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(dateLayout, value, loc); err == nil {
		return t, nil
	}
	return time.Time{}, &recurrence.ParseError{Property: tag, Value: value, Err: recurrence.ErrMalformedTimestamp}
}
