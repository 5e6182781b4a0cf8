package recurrence

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/samber/mo"
)

var propertyPattern = regexp.MustCompile(`(DTSTART|DTEND|RRULE|EXRULE|RDATE|EXDATE)(;[^:\r\n]*)?:([^\r\n]*)`)

// Decoder turns recurrence text back into a Recurrence. It scans for
// recognized property lines and ignores everything else.
type Decoder struct {
	cfg DecoderConfig
}

// NewDecoder builds a decoder; without options it is lenient and reads
// local timestamps in time.Local.
func NewDecoder(opts ...Option) *Decoder {
	return &Decoder{cfg: newDecoderConfig(opts)}
}

// Deserialize decodes text with the default decoder.
func Deserialize(text string) (*Recurrence, error) {
	return NewDecoder().Decode(text)
}

// Decode parses every DTSTART, DTEND, RRULE, EXRULE, RDATE and EXDATE
// property found in text. Only malformed weekday tokens and timestamps
// (and, in strict mode, unknown frequencies) fail the call; other
// unrecognized input is skipped.
func (d *Decoder) Decode(text string) (*Recurrence, error) {
	rec := &Recurrence{}

	for _, m := range propertyPattern.FindAllStringSubmatch(text, -1) {
		label, value := m[1], strings.TrimSpace(m[3])

		switch label {
		case "RRULE", "EXRULE":
			rule, err := d.decodeRule(label, value)
			if err != nil {
				return nil, err
			}
			if rule == nil {
				continue
			}
			if label == "RRULE" {
				rec.RRules = append(rec.RRules, rule)
			} else {
				rec.ExRules = append(rec.ExRules, rule)
			}
		default:
			t, err := d.decodeTime(label, value)
			if err != nil {
				return nil, err
			}
			switch label {
			case "DTSTART":
				rec.Dtstart = mo.Some(t)
			case "DTEND":
				rec.Dtend = mo.Some(t)
			case "RDATE":
				rec.RDates = append(rec.RDates, t)
			case "EXDATE":
				rec.ExDates = append(rec.ExDates, t)
			}
		}
	}

	return rec, nil
}

type ruleParam struct {
	key    string
	values []string
}

func splitRuleParams(value string) []ruleParam {
	var params []ruleParam
	for _, item := range strings.Split(value, ";") {
		key, raw, ok := strings.Cut(item, "=")
		if !ok {
			continue
		}
		var values []string
		for _, v := range strings.Split(raw, ",") {
			values = append(values, strings.TrimSpace(v))
		}
		params = append(params, ruleParam{
			key:    strings.ToUpper(strings.TrimSpace(key)),
			values: values,
		})
	}
	return params
}

func (d *Decoder) decodeRule(label, value string) (*Rule, error) {
	log := d.cfg.Logger.With(slog.String("property", label))

	if !strings.Contains(value, "=") {
		log.Debug("ignoring rule without parameters", "value", value)
		return nil, nil
	}

	r := &Rule{Freq: Yearly, Interval: 1}
	for _, p := range splitRuleParams(value) {
		first := p.values[0]

		switch p.key {
		case "FREQ":
			freq, ok := ParseFrequency(first)
			if !ok {
				if d.cfg.StrictFrequency {
					return nil, &ParseError{Property: label, Value: first, Err: ErrUnknownFrequency}
				}
				log.Debug("unknown frequency, falling back to YEARLY", "freq", first)
				freq = Yearly
			}
			r.Freq = freq
		case "DTSTART":
			t, err := d.decodeTime(p.key, first)
			if err != nil {
				return nil, err
			}
			r.Dtstart = mo.Some(t)
		case "UNTIL":
			t, err := d.decodeTime(p.key, first)
			if err != nil {
				return nil, err
			}
			r.until = mo.Some(t)
		case "INTERVAL":
			n, err := strconv.Atoi(first)
			if err != nil || n < 1 {
				log.Debug("ignoring interval", "interval", first)
				continue
			}
			r.Interval = n
		case "COUNT":
			n, err := strconv.Atoi(first)
			if err != nil || n < 1 {
				log.Debug("ignoring count", "count", first)
				continue
			}
			r.count = mo.Some(n)
		case "WKST":
			w, err := ParseWeekday(first)
			if err != nil {
				return nil, &ParseError{Property: label, Value: first, Err: ErrInvalidWeekdayToken}
			}
			r.Wkst = mo.Some(w.WithIndex(0))
		case "BYDAY":
			days := make([]Weekday, 0, len(p.values))
			for _, tok := range p.values {
				w, err := ParseWeekday(tok)
				if err != nil {
					return nil, &ParseError{Property: label, Value: tok, Err: ErrInvalidWeekdayToken}
				}
				days = append(days, w)
			}
			r.ByDay = days
		default:
			bp, ok := lookupIntByParam(p.key)
			if !ok {
				log.Debug("ignoring unknown rule parameter", "key", p.key)
				continue
			}
			ints := make([]int, 0, len(p.values))
			for _, v := range p.values {
				n, err := strconv.Atoi(v)
				if err != nil {
					log.Debug("dropping non-integer value", "key", p.key, "value", v)
					continue
				}
				ints = append(ints, n)
			}
			*bp.field(r) = ints
		}
	}

	if r.count.IsPresent() && r.until.IsPresent() {
		log.Debug("rule has both COUNT and UNTIL, keeping COUNT")
		r.until = mo.None[time.Time]()
	}
	return r, nil
}

func (d *Decoder) decodeTime(property, value string) (time.Time, error) {
	t, err := ParseDateTimeIn(value, d.cfg.Location)
	if err != nil {
		return time.Time{}, &ParseError{Property: property, Value: value, Err: ErrMalformedTimestamp}
	}
	return t, nil
}
