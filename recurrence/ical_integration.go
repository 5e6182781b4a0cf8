package recurrence

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/samber/mo"
)

// PropExceptionRule is the deprecated EXRULE property, which go-ical has
// no constant for.
const PropExceptionRule = "EXRULE"

const productID = "-//cyp0633//librecur//EN"

// FromComponent reads DTSTART, DTEND, RRULE, EXRULE, RDATE and EXDATE from
// an iCalendar component. RDATE/EXDATE lists are split on commas. TZID
// parameters are not resolved; values without Z use the decoder's zone.
func (d *Decoder) FromComponent(comp *ical.Component) (*Recurrence, error) {
	rec := &Recurrence{}

	if p := comp.Props.Get(ical.PropDateTimeStart); p != nil && p.Value != "" {
		t, err := d.decodeTime(p.Name, p.Value)
		if err != nil {
			return nil, err
		}
		rec.Dtstart = mo.Some(t)
	}
	if p := comp.Props.Get(ical.PropDateTimeEnd); p != nil && p.Value != "" {
		t, err := d.decodeTime(p.Name, p.Value)
		if err != nil {
			return nil, err
		}
		rec.Dtend = mo.Some(t)
	}

	for _, p := range comp.Props.Values(ical.PropRecurrenceRule) {
		r, err := d.decodeRule(ical.PropRecurrenceRule, p.Value)
		if err != nil {
			return nil, err
		}
		if r != nil {
			rec.RRules = append(rec.RRules, r)
		}
	}
	for _, p := range comp.Props.Values(PropExceptionRule) {
		r, err := d.decodeRule(PropExceptionRule, p.Value)
		if err != nil {
			return nil, err
		}
		if r != nil {
			rec.ExRules = append(rec.ExRules, r)
		}
	}

	var err error
	if rec.RDates, err = d.dateList(comp.Props.Values(ical.PropRecurrenceDates)); err != nil {
		return nil, err
	}
	if rec.ExDates, err = d.dateList(comp.Props.Values(ical.PropExceptionDates)); err != nil {
		return nil, err
	}
	return rec, nil
}

func (d *Decoder) dateList(props []ical.Prop) ([]time.Time, error) {
	var out []time.Time
	for _, p := range props {
		for _, v := range strings.Split(p.Value, ",") {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			t, err := d.decodeTime(p.Name, v)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}
	}
	return out, nil
}

// ApplyToComponent replaces the recurrence properties of comp with rec.
// DTSTART and DTEND are only touched when rec carries them.
func ApplyToComponent(comp *ical.Component, rec *Recurrence) {
	for _, name := range []string{
		ical.PropRecurrenceRule, PropExceptionRule,
		ical.PropRecurrenceDates, ical.PropExceptionDates,
	} {
		comp.Props.Del(name)
	}

	set := func(name, value string) {
		p := ical.NewProp(name)
		p.Value = value
		comp.Props.Set(p)
	}
	add := func(name, value string) {
		p := ical.NewProp(name)
		p.Value = value
		comp.Props.Add(p)
	}

	if t, ok := rec.Dtstart.Get(); ok {
		set(ical.PropDateTimeStart, FormatDateTime(t))
	}
	if t, ok := rec.Dtend.Get(); ok {
		set(ical.PropDateTimeEnd, FormatDateTime(t))
	}
	for _, r := range rec.RRules {
		add(ical.PropRecurrenceRule, r.String())
	}
	for _, r := range rec.ExRules {
		add(PropExceptionRule, r.String())
	}
	for _, t := range rec.RDates {
		add(ical.PropRecurrenceDates, FormatDateTime(t))
	}
	for _, t := range rec.ExDates {
		add(ical.PropExceptionDates, FormatDateTime(t))
	}
}

// EventOptions fills the non-recurrence properties of an exported event.
type EventOptions struct {
	UID     string    // generated when empty
	Summary string    // omitted when empty
	Stamp   time.Time // DTSTAMP, defaults to now
}

// NewEvent builds a VEVENT carrying rec. The recurrence must have a
// DTSTART because an event without METHOD requires one.
func NewEvent(rec *Recurrence, opts EventOptions) (*ical.Event, error) {
	if rec.Dtstart.IsAbsent() {
		return nil, errors.New("event export requires DTSTART")
	}
	if opts.UID == "" {
		opts.UID = uuid.NewString()
	}
	if opts.Stamp.IsZero() {
		opts.Stamp = time.Now()
	}

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, opts.UID)
	event.Props.SetDateTime(ical.PropDateTimeStamp, opts.Stamp.UTC().Truncate(time.Second))
	if opts.Summary != "" {
		event.Props.SetText(ical.PropSummary, opts.Summary)
	}
	ApplyToComponent(event.Component, rec)
	return event, nil
}

// EncodeCalendar writes a VCALENDAR holding one VEVENT per recurrence.
func EncodeCalendar(w io.Writer, recs []*Recurrence, opts EventOptions) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText(ical.PropVersion, "2.0")

	for i, rec := range recs {
		eventOpts := opts
		if len(recs) > 1 {
			eventOpts.UID = ""
		}
		event, err := NewEvent(rec, eventOpts)
		if err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		cal.Children = append(cal.Children, event.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

// DecodeCalendar reads every VEVENT of every VCALENDAR in r.
func (d *Decoder) DecodeCalendar(r io.Reader) ([]*Recurrence, error) {
	dec := ical.NewDecoder(r)
	var out []*Recurrence
	for {
		cal, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar: %w", err)
		}
		for _, event := range cal.Events() {
			rec, err := d.FromComponent(event.Component)
			if err != nil {
				return nil, err
			}
			out = append(out, rec)
		}
	}
	return out, nil
}
