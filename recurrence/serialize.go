package recurrence

import (
	"strconv"
	"strings"
)

// Serializable is implemented by *Rule and *Recurrence.
type Serializable interface {
	asRecurrence() *Recurrence
}

// Serialize renders a rule or recurrence as newline-joined property lines
// in the fixed order DTSTART, DTEND, RRULE..., EXRULE..., RDATE...,
// EXDATE.... A lone rule serializes as a recurrence holding only that
// rule.
func Serialize(v Serializable) string {
	rec := v.asRecurrence()
	if rec == nil {
		return ""
	}

	var lines []string
	if t, ok := rec.Dtstart.Get(); ok {
		lines = append(lines, "DTSTART:"+FormatDateTime(t))
	}
	if t, ok := rec.Dtend.Get(); ok {
		lines = append(lines, "DTEND:"+FormatDateTime(t))
	}
	for _, r := range rec.RRules {
		lines = append(lines, "RRULE:"+r.String())
	}
	for _, r := range rec.ExRules {
		lines = append(lines, "EXRULE:"+r.String())
	}
	for _, t := range rec.RDates {
		lines = append(lines, "RDATE:"+FormatDateTime(t))
	}
	for _, t := range rec.ExDates {
		lines = append(lines, "EXDATE:"+FormatDateTime(t))
	}
	return strings.Join(lines, "\n")
}

// String renders the rule's parameter list without the RRULE: label,
// e.g. "FREQ=YEARLY;INTERVAL=2;COUNT=5;BYMONTH=6".
func (r *Rule) String() string {
	params := []string{"FREQ=" + r.Freq.String()}

	if t, ok := r.Dtstart.Get(); ok {
		params = append(params, "DTSTART="+FormatDateTime(t))
	}
	if r.Interval != 1 {
		params = append(params, "INTERVAL="+strconv.Itoa(r.Interval))
	}
	if w, ok := r.Wkst.Get(); ok {
		params = append(params, "WKST="+w.Code())
	}
	if n, ok := r.count.Get(); ok {
		params = append(params, "COUNT="+strconv.Itoa(n))
	} else if t, ok := r.until.Get(); ok {
		params = append(params, "UNTIL="+FormatDateTime(t))
	}
	if len(r.ByDay) > 0 {
		days := make([]string, len(r.ByDay))
		for i, w := range r.ByDay {
			days[i] = w.String()
		}
		params = append(params, "BYDAY="+strings.Join(days, ","))
	}
	for _, p := range intByParams {
		values := *p.field(r)
		if len(values) == 0 {
			continue
		}
		params = append(params, p.key+"="+joinInts(values))
	}
	return strings.Join(params, ";")
}

func (r *Rule) asRecurrence() *Recurrence {
	if r == nil {
		return nil
	}
	return &Recurrence{RRules: []*Rule{r}}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
