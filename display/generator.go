package display

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/cyp0633/librecur/recurrence"
)

// Mode tells whether a label belongs to an inclusion or exclusion entry.
type Mode int

const (
	Inclusion Mode = iota
	Exclusion
)

const dateLayout = "2006-01-02"

// Generator renders rules as sentences from a phrase table. Output only
// depends on the rule values and the table.
type Generator struct {
	phrases *Phrases
	tag     language.Tag
}

// NewGenerator uses p, or English when p is nil.
func NewGenerator(p *Phrases) *Generator {
	if p == nil {
		p = English
	}
	return &Generator{phrases: p, tag: languageTag(p.Language)}
}

// DisplayText renders r with phrase table p and capitalizes the result.
func DisplayText(r *recurrence.Rule, p *Phrases, short bool) string {
	return NewGenerator(p).Label(r, Inclusion, short)
}

func (g *Generator) Phrases() *Phrases {
	return g.phrases
}

// Text renders r as comma-joined clauses, e.g.
// "every 2 years, each june, 5 times". The first letter is left as is.
func (g *Generator) Text(r *recurrence.Rule, short bool) string {
	p := g.phrases
	var parts []string

	if r.Interval > 1 {
		parts = append(parts, interpolate(p.Tokens.EveryNumberFreq, map[string]string{
			"number": strconv.Itoa(r.Interval),
			"freq":   listItem(p.TimeIntervalsPlural, int(r.Freq)),
		}))
	} else {
		parts = append(parts, listItem(p.Frequencies, int(r.Freq)))
	}

	switch r.Freq {
	case recurrence.Yearly:
		if len(r.ByMonth) > 0 {
			months := p.Months
			if short {
				months = p.MonthsShort
			}
			items := make([]string, len(r.ByMonth))
			for i, m := range r.ByMonth {
				items[i] = listItem(months, m-1)
			}
			parts = append(parts, g.each(items))
		}
		if len(r.ByDay) > 0 || len(r.BySetPos) > 0 {
			if items := PositionWeekdays(p, r.BySetPos, r.ByDay, short); len(items) > 0 {
				parts = append(parts, g.onThe(items))
			}
		}
	case recurrence.Monthly:
		if len(r.ByMonthDay) > 0 {
			items := make([]string, len(r.ByMonthDay))
			for i, day := range r.ByMonthDay {
				items[i] = g.monthDay(day, short)
			}
			parts = append(parts, g.onThe(items))
		} else if len(r.ByDay) > 0 {
			parts = append(parts, g.onThe(PositionWeekdays(p, r.BySetPos, r.ByDay, short)))
		}
	case recurrence.Weekly:
		if len(r.ByDay) > 0 {
			items := make([]string, len(r.ByDay))
			for i, w := range r.ByDay {
				items[i] = weekdayName(p, w.Number, short)
			}
			parts = append(parts, g.each(items))
		}
	}

	if t, ok := r.Dtstart.Get(); ok {
		parts = append(parts, interpolate(p.Tokens.From, map[string]string{"date": t.Format(dateLayout)}))
	}

	if n, ok := r.Count().Get(); ok {
		token := p.Tokens.CountPlural
		if n == 1 {
			token = p.Tokens.Count
		}
		parts = append(parts, interpolate(token, map[string]string{"number": strconv.Itoa(n)}))
	} else if t, ok := r.Until().Get(); ok {
		parts = append(parts, interpolate(p.Tokens.Until, map[string]string{"date": t.Format(dateLayout)}))
	}

	return strings.Join(parts, ", ")
}

// Label is Text with the exclusion prefix applied and the first letter
// capitalized, as shown next to an entry in an editor.
func (g *Generator) Label(r *recurrence.Rule, mode Mode, short bool) string {
	return g.finish(g.Text(r, short), mode)
}

// DateLabel renders an explicit RDATE/EXDATE in the table's day format.
func (g *Generator) DateLabel(t time.Time, mode Mode) string {
	p := g.phrases
	text := interpolate(p.DayFormat, map[string]string{
		"weekday": weekdayName(p, (int(t.Weekday())+6)%7, false),
		"month":   listItem(p.Months, int(t.Month())-1),
		"day":     strconv.Itoa(t.Day()),
		"year":    strconv.Itoa(t.Year()),
	})
	return g.finish(text, mode)
}

// CountLabel splits the capitalized count phrase around its number, for
// editors that put an input field between the two halves.
func (g *Generator) CountLabel(n int) (before, after string) {
	token := g.phrases.Tokens.CountPlural
	if n == 1 {
		token = g.phrases.Tokens.Count
	}
	before, after, _ = strings.Cut(capitalize(token, g.tag), "%(number)s")
	return before, after
}

func (g *Generator) finish(text string, mode Mode) string {
	if mode == Exclusion {
		text = g.phrases.Mode.Exclusion + " " + text
	}
	return capitalize(text, g.tag)
}

func (g *Generator) each(items []string) string {
	return interpolate(g.phrases.Tokens.Each, map[string]string{"items": strings.Join(items, ", ")})
}

func (g *Generator) onThe(items []string) string {
	return interpolate(g.phrases.Tokens.OnTheItems, map[string]string{"items": strings.Join(items, ", ")})
}

func (g *Generator) monthDay(day int, short bool) string {
	if day < 0 {
		table := g.phrases.LastOfMonth
		if short {
			table = g.phrases.LastOfMonthShort
		}
		if s, ok := table[day]; ok {
			return s
		}
		return strconv.Itoa(day)
	}
	return strconv.Itoa(day) + OrdinalIndicator(g.phrases.Language, day)
}

// PositionWeekdays pairs ordinals with weekdays, e.g. "first monday".
// With positions, every position is crossed with every weekday and a zero
// position reads as first. Without, each weekday uses its own index.
func PositionWeekdays(p *Phrases, positions []int, weekdays []recurrence.Weekday, short bool) []string {
	var items []string
	if len(positions) > 0 && len(weekdays) > 0 {
		for _, pos := range positions {
			if pos == 0 {
				pos = 1
			}
			for _, w := range weekdays {
				items = append(items, positionWeekday(p, pos, w.Number, short))
			}
		}
	} else {
		for _, w := range weekdays {
			pos := w.Index
			if pos == 0 {
				pos = 1
			}
			items = append(items, positionWeekday(p, pos, w.Number, short))
		}
	}
	return items
}

func positionWeekday(p *Phrases, pos, weekday int, short bool) string {
	table := p.WeekdaysPosition
	if short {
		table = p.WeekdaysPositionShort
	}
	name := weekdayName(p, weekday, short)
	label, ok := table[pos]
	if !ok {
		return name
	}
	return interpolate(label, map[string]string{"weekday": name})
}

func weekdayName(p *Phrases, number int, short bool) string {
	if short {
		return listItem(p.WeekdaysShort, number)
	}
	return listItem(p.Weekdays, number)
}

// listItem returns list[i], or the 1-based number when i is out of range.
func listItem(list []string, i int) string {
	if i < 0 || i >= len(list) {
		return strconv.Itoa(i + 1)
	}
	return list[i]
}
