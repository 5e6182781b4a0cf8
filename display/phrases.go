package display

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Phrases is an injected locale table. List fields are indexed by
// recurrence.Frequency ordinal, weekday number (Monday=0) and month-1.
// Templates use named placeholders such as %(items)s.
type Phrases struct {
	Language string `yaml:"language"`

	Frequencies         []string `yaml:"frequencies"`
	TimeIntervalsPlural []string `yaml:"timeintervals_plural"`
	Weekdays            []string `yaml:"weekdays"`
	WeekdaysShort       []string `yaml:"weekdays_short"`
	Months              []string `yaml:"months"`
	MonthsShort         []string `yaml:"months_short"`

	// Keyed by signed ordinal: 1 first, -1 last. Templates take %(weekday)s.
	WeekdaysPosition      map[int]string `yaml:"weekdays_position"`
	WeekdaysPositionShort map[int]string `yaml:"weekdays_position_short"`
	// Keyed by negative month day.
	LastOfMonth      map[int]string `yaml:"last_of_month"`
	LastOfMonthShort map[int]string `yaml:"last_of_month_short"`

	Tokens Tokens     `yaml:"tokens"`
	Mode   ModeTokens `yaml:"mode"`

	// DayFormat renders explicit dates; it takes %(weekday)s, %(month)s,
	// %(day)s and %(year)s.
	DayFormat string `yaml:"day_format"`
}

type Tokens struct {
	EveryNumberFreq string `yaml:"every_number_freq"` // %(number)s %(freq)s
	Each            string `yaml:"each"`              // %(items)s
	OnTheItems      string `yaml:"on_the_items"`      // %(items)s
	From            string `yaml:"from"`              // %(date)s
	Until           string `yaml:"until"`             // %(date)s
	Count           string `yaml:"count"`             // %(number)s
	CountPlural     string `yaml:"count_plural"`      // %(number)s
}

type ModeTokens struct {
	Inclusion string `yaml:"inclusion"`
	Exclusion string `yaml:"exclusion"`
}

// Validate checks list lengths and that every token is present.
func (p *Phrases) Validate() error {
	var errs []error
	checkLen := func(name string, list []string, want int) {
		if len(list) != want {
			errs = append(errs, fmt.Errorf("%s: want %d entries, got %d", name, want, len(list)))
		}
	}
	checkLen("frequencies", p.Frequencies, 7)
	checkLen("timeintervals_plural", p.TimeIntervalsPlural, 7)
	checkLen("weekdays", p.Weekdays, 7)
	checkLen("weekdays_short", p.WeekdaysShort, 7)
	checkLen("months", p.Months, 12)
	checkLen("months_short", p.MonthsShort, 12)

	tokens := map[string]string{
		"tokens.every_number_freq": p.Tokens.EveryNumberFreq,
		"tokens.each":              p.Tokens.Each,
		"tokens.on_the_items":      p.Tokens.OnTheItems,
		"tokens.from":              p.Tokens.From,
		"tokens.until":             p.Tokens.Until,
		"tokens.count":             p.Tokens.Count,
		"tokens.count_plural":      p.Tokens.CountPlural,
		"mode.inclusion":           p.Mode.Inclusion,
		"mode.exclusion":           p.Mode.Exclusion,
		"day_format":               p.DayFormat,
	}
	names := make([]string, 0, len(tokens))
	for name := range tokens {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if tokens[name] == "" {
			errs = append(errs, fmt.Errorf("%s: missing", name))
		}
	}
	return errors.Join(errs...)
}

// fillFrom copies every empty field of p from base.
func (p *Phrases) fillFrom(base *Phrases) {
	fillList := func(dst *[]string, src []string) {
		if len(*dst) == 0 {
			*dst = slices.Clone(src)
		}
	}
	fillMap := func(dst *map[int]string, src map[int]string) {
		if len(*dst) == 0 {
			*dst = maps.Clone(src)
		}
	}
	fillText := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}

	fillText(&p.Language, base.Language)
	fillList(&p.Frequencies, base.Frequencies)
	fillList(&p.TimeIntervalsPlural, base.TimeIntervalsPlural)
	fillList(&p.Weekdays, base.Weekdays)
	fillList(&p.WeekdaysShort, base.WeekdaysShort)
	fillList(&p.Months, base.Months)
	fillList(&p.MonthsShort, base.MonthsShort)
	fillMap(&p.WeekdaysPosition, base.WeekdaysPosition)
	fillMap(&p.WeekdaysPositionShort, base.WeekdaysPositionShort)
	fillMap(&p.LastOfMonth, base.LastOfMonth)
	fillMap(&p.LastOfMonthShort, base.LastOfMonthShort)

	fillText(&p.Tokens.EveryNumberFreq, base.Tokens.EveryNumberFreq)
	fillText(&p.Tokens.Each, base.Tokens.Each)
	fillText(&p.Tokens.OnTheItems, base.Tokens.OnTheItems)
	fillText(&p.Tokens.From, base.Tokens.From)
	fillText(&p.Tokens.Until, base.Tokens.Until)
	fillText(&p.Tokens.Count, base.Tokens.Count)
	fillText(&p.Tokens.CountPlural, base.Tokens.CountPlural)
	fillText(&p.Mode.Inclusion, base.Mode.Inclusion)
	fillText(&p.Mode.Exclusion, base.Mode.Exclusion)
	fillText(&p.DayFormat, base.DayFormat)
}
