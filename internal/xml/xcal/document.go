package xcal

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/samber/mo"

	"github.com/cyp0633/librecur/recurrence"
)

var ErrNoEvent = errors.New("xcal: document has no vevent")

const productID = "-//cyp0633//librecur//EN"

// NewDocument wraps each recurrence in its own vevent inside a single
// vcalendar.
func NewDocument(recs ...*recurrence.Recurrence) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement(TagICalendar)
	root.CreateAttr("xmlns", Namespace)
	vcal := root.CreateElement(TagVCalendar)

	props := vcal.CreateElement(TagProperties)
	props.CreateElement(TagProdID).CreateElement(TagText).SetText(productID)
	props.CreateElement(TagVersion).CreateElement(TagText).SetText("2.0")

	comps := vcal.CreateElement(TagComponents)
	for _, rec := range recs {
		comps.AddChild(encodeEvent(rec))
	}

	doc.Indent(2)
	return doc
}

// Encode writes recs as an xCal document.
func Encode(w io.Writer, recs ...*recurrence.Recurrence) error {
	if _, err := NewDocument(recs...).WriteTo(w); err != nil {
		return fmt.Errorf("failed to write xcal document: %w", err)
	}
	return nil
}

func encodeEvent(rec *recurrence.Recurrence) *etree.Element {
	event := etree.NewElement(TagVEvent)
	props := event.CreateElement(TagProperties)

	addDateTime := func(tag string, t time.Time) {
		props.CreateElement(tag).CreateElement(TagDateTime).SetText(formatDateTime(t))
	}

	if t, ok := rec.Dtstart.Get(); ok {
		addDateTime(TagDtstart, t)
	}
	if t, ok := rec.Dtend.Get(); ok {
		addDateTime(TagDtend, t)
	}
	for _, r := range rec.RRules {
		props.CreateElement(TagRRule).AddChild(EncodeRule(r))
	}
	for _, r := range rec.ExRules {
		props.CreateElement(TagExRule).AddChild(EncodeRule(r))
	}
	for _, t := range rec.RDates {
		addDateTime(TagRDate, t)
	}
	for _, t := range rec.ExDates {
		addDateTime(TagExDate, t)
	}
	return event
}

// Decode reads every vevent of an xCal document. Local date-times are
// read in loc, or time.Local when loc is nil.
func Decode(r io.Reader, loc *time.Location) ([]*recurrence.Recurrence, error) {
	if loc == nil {
		loc = time.Local
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("failed to parse xcal document: %w", err)
	}

	events := doc.FindElements("//" + TagVEvent)
	if len(events) == 0 {
		return nil, ErrNoEvent
	}

	recs := make([]*recurrence.Recurrence, 0, len(events))
	for _, event := range events {
		rec, err := decodeEvent(event, loc)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// DecodeString is Decode for the first vevent of an in-memory document.
func DecodeString(s string, loc *time.Location) (*recurrence.Recurrence, error) {
	recs, err := Decode(strings.NewReader(s), loc)
	if err != nil {
		return nil, err
	}
	return recs[0], nil
}

func decodeEvent(event *etree.Element, loc *time.Location) (*recurrence.Recurrence, error) {
	rec := &recurrence.Recurrence{}

	props := event.SelectElement(TagProperties)
	if props == nil {
		return rec, nil
	}

	for _, prop := range props.ChildElements() {
		tag := strings.ToLower(prop.Tag)
		switch tag {
		case TagDtstart, TagDtend, TagRDate, TagExDate:
			times, err := valueTimes(prop, loc)
			if err != nil {
				return nil, err
			}
			switch tag {
			case TagDtstart:
				if len(times) > 0 {
					rec.Dtstart = mo.Some(times[len(times)-1])
				}
			case TagDtend:
				if len(times) > 0 {
					rec.Dtend = mo.Some(times[len(times)-1])
				}
			case TagRDate:
				rec.RDates = append(rec.RDates, times...)
			case TagExDate:
				rec.ExDates = append(rec.ExDates, times...)
			}
		case TagRRule, TagExRule:
			recur := prop.SelectElement(TagRecur)
			if recur == nil {
				continue
			}
			rule, err := DecodeRule(recur, loc)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", tag, err)
			}
			if tag == TagRRule {
				rec.RRules = append(rec.RRules, rule)
			} else {
				rec.ExRules = append(rec.ExRules, rule)
			}
		}
	}
	return rec, nil
}

// valueTimes reads the date-time and date values of a property. A
// property may carry several.
func valueTimes(prop *etree.Element, loc *time.Location) ([]time.Time, error) {
	var out []time.Time
	for _, v := range prop.ChildElements() {
		if v.Tag != TagDateTime && v.Tag != TagDate {
			continue
		}
		t, err := parseDateTime(prop.Tag, strings.TrimSpace(v.Text()), loc)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
