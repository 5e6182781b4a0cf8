package recurrence

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeserializeExample(t *testing.T) {
	rec, err := Deserialize("RRULE:FREQ=WEEKLY;BYDAY=MO,WE,FR\nEXDATE:20240101T000000Z")
	require.NoError(t, err)

	require.Len(t, rec.RRules, 1)
	assert.Equal(t, Weekly, rec.RRules[0].Freq)
	assert.Equal(t, []Weekday{MO, WE, FR}, rec.RRules[0].ByDay)
	assert.Equal(t, 1, rec.RRules[0].Interval)

	require.Len(t, rec.ExDates, 1)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), rec.ExDates[0])
	assert.Empty(t, rec.ExRules)
	assert.Empty(t, rec.RDates)
}

func TestDeserializeAllProperties(t *testing.T) {
	text := `some header line
DTSTART:20240101T090000Z
DTEND:20241231T090000Z
RRULE:FREQ=MONTHLY;INTERVAL=2;BYDAY=2TU,-1FR;BYSETPOS=1;UNTIL=20240601T000000Z
EXRULE:FREQ=DAILY;COUNT=3;WKST=SU;BYHOUR=9,10
RDATE:20240105T000000Z
RDATE:20240106T000000Z
EXDATE:20240107T000000Z
X-COMMENT: ignored`

	rec, err := Deserialize(text)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), rec.Dtstart.MustGet())
	assert.Equal(t, time.Date(2024, 12, 31, 9, 0, 0, 0, time.UTC), rec.Dtend.MustGet())

	require.Len(t, rec.RRules, 1)
	rr := rec.RRules[0]
	assert.Equal(t, Monthly, rr.Freq)
	assert.Equal(t, 2, rr.Interval)
	assert.Equal(t, []Weekday{TU.WithIndex(2), FR.WithIndex(-1)}, rr.ByDay)
	assert.Equal(t, []int{1}, rr.BySetPos)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), rr.Until().MustGet())

	require.Len(t, rec.ExRules, 1)
	ex := rec.ExRules[0]
	assert.Equal(t, Daily, ex.Freq)
	assert.Equal(t, mo.Some(3), ex.Count())
	assert.Equal(t, mo.Some(SU), ex.Wkst)
	assert.Equal(t, []int{9, 10}, ex.ByHour)

	assert.Len(t, rec.RDates, 2)
	assert.Len(t, rec.ExDates, 1)
}

func TestDeserializeLeniency(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		check func(t *testing.T, rec *Recurrence)
	}{
		{
			name: "unknown frequency falls back to yearly",
			text: "RRULE:FREQ=FORTNIGHTLY;COUNT=2",
			check: func(t *testing.T, rec *Recurrence) {
				assert.Equal(t, Yearly, rec.RRules[0].Freq)
				assert.Equal(t, mo.Some(2), rec.RRules[0].Count())
			},
		},
		{
			name: "missing frequency is yearly",
			text: "RRULE:BYMONTH=3",
			check: func(t *testing.T, rec *Recurrence) {
				assert.Equal(t, Yearly, rec.RRules[0].Freq)
				assert.Equal(t, []int{3}, rec.RRules[0].ByMonth)
			},
		},
		{
			name: "unknown keys are dropped",
			text: "RRULE:FREQ=DAILY;X-FOO=1;BYEASTER=0",
			check: func(t *testing.T, rec *Recurrence) {
				assert.True(t, rec.RRules[0].Equal(MustRule(Daily, Options{})))
			},
		},
		{
			name: "lowercase keys and values",
			text: "RRULE:freq=weekly;byday=mo,tu",
			check: func(t *testing.T, rec *Recurrence) {
				assert.Equal(t, Weekly, rec.RRules[0].Freq)
				assert.Equal(t, []Weekday{MO, TU}, rec.RRules[0].ByDay)
			},
		},
		{
			name: "non-integer by-field values are dropped",
			text: "RRULE:FREQ=MONTHLY;BYMONTHDAY=1,x,15",
			check: func(t *testing.T, rec *Recurrence) {
				assert.Equal(t, []int{1, 15}, rec.RRules[0].ByMonthDay)
			},
		},
		{
			name: "invalid interval and count are ignored",
			text: "RRULE:FREQ=DAILY;INTERVAL=0;COUNT=abc",
			check: func(t *testing.T, rec *Recurrence) {
				assert.Equal(t, 1, rec.RRules[0].Interval)
				assert.True(t, rec.RRules[0].Count().IsAbsent())
			},
		},
		{
			name: "count wins over until",
			text: "RRULE:FREQ=DAILY;UNTIL=20240101T000000Z;COUNT=4",
			check: func(t *testing.T, rec *Recurrence) {
				assert.Equal(t, mo.Some(4), rec.RRules[0].Count())
				assert.True(t, rec.RRules[0].Until().IsAbsent())
			},
		},
		{
			name: "rule without parameters is ignored",
			text: "RRULE:WEEKLY\nRDATE:20240101T000000Z",
			check: func(t *testing.T, rec *Recurrence) {
				assert.Empty(t, rec.RRules)
				assert.Len(t, rec.RDates, 1)
			},
		},
		{
			name: "last dtstart wins",
			text: "DTSTART:20240101T000000Z\nDTSTART:20250101T000000Z",
			check: func(t *testing.T, rec *Recurrence) {
				assert.Equal(t, 2025, rec.Dtstart.MustGet().Year())
			},
		},
		{
			name: "property parameters and CRLF",
			text: "DTSTART;VALUE=DATE:20240101\r\nEXDATE;X-A=b:20240102T000000Z\r\n",
			check: func(t *testing.T, rec *Recurrence) {
				assert.Equal(t, 1, rec.Dtstart.MustGet().Day())
				assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), rec.ExDates[0])
			},
		},
		{
			name: "wkst ordinal is discarded",
			text: "RRULE:FREQ=WEEKLY;WKST=2TU",
			check: func(t *testing.T, rec *Recurrence) {
				assert.Equal(t, mo.Some(TU), rec.RRules[0].Wkst)
			},
		},
		{
			name: "unrelated text",
			text: "hello world\nSUMMARY:lunch",
			check: func(t *testing.T, rec *Recurrence) {
				assert.True(t, rec.IsEmpty())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Deserialize(tt.text)
			require.NoError(t, err)
			tt.check(t, rec)
		})
	}
}

func TestDeserializeErrors(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected error
	}{
		{"bad byday token", "RRULE:FREQ=WEEKLY;BYDAY=MO,9ZZ", ErrInvalidWeekdayToken},
		{"bad wkst token", "RRULE:FREQ=WEEKLY;WKST=XX", ErrInvalidWeekdayToken},
		{"short exdate", "EXDATE:2024", ErrMalformedTimestamp},
		{"bad until", "RRULE:FREQ=DAILY;UNTIL=2024XX01", ErrMalformedTimestamp},
		{"bad dtstart", "DTSTART:abcdefgh", ErrMalformedTimestamp},
		{"fails fast after good lines", "RDATE:20240101T000000Z\nRDATE:nope", ErrMalformedTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Deserialize(tt.text)
			assert.Nil(t, rec)
			assert.ErrorIs(t, err, tt.expected)

			var perr *ParseError
			assert.ErrorAs(t, err, &perr)
		})
	}
}

func TestDecoderStrictFrequency(t *testing.T) {
	_, err := NewDecoder(WithStrictFrequency()).Decode("RRULE:FREQ=SOMETIMES")
	assert.ErrorIs(t, err, ErrUnknownFrequency)

	rec, err := NewDecoder(WithStrictFrequency()).Decode("RRULE:FREQ=HOURLY")
	require.NoError(t, err)
	assert.Equal(t, Hourly, rec.RRules[0].Freq)
}

func TestDecoderLocation(t *testing.T) {
	loc := time.FixedZone("decoder", -3*3600)
	rec, err := NewDecoder(WithLocation(loc)).Decode("RDATE:20240101T100000\nEXDATE:20240101T100000Z")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC), rec.RDates[0].UTC())
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), rec.ExDates[0])
}

func TestDecoderLogsLeniency(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := NewDecoder(WithLogger(logger)).Decode("RRULE:FREQ=NEVER;X-NAME=a")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "unknown frequency")
	assert.Contains(t, out, "freq=NEVER")
	assert.Contains(t, out, "key=X-NAME")
	assert.Contains(t, out, "property=RRULE")
}

func roundTripRules() []*Rule {
	start := time.Date(2024, 2, 29, 7, 45, 0, 0, time.UTC)
	until := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	return []*Rule{
		MustRule(Yearly, Options{}),
		MustRule(Yearly, Options{Interval: 2, ByMonth: []int{6}, Count: mo.Some(5)}),
		MustRule(Monthly, Options{ByMonthDay: []int{1, -1, 15}, Until: mo.Some(until)}),
		MustRule(Monthly, Options{ByDay: []Weekday{TU.WithIndex(2), SU.WithIndex(-1)}, BySetPos: []int{1, -2}}),
		MustRule(Weekly, Options{ByDay: []Weekday{MO, WE, FR}, Wkst: mo.Some(SU), Dtstart: mo.Some(start)}),
		MustRule(Daily, Options{Interval: 10, ByHour: []int{8, 20}, ByMinute: []int{15}, BySecond: []int{0, 30}}),
		MustRule(Hourly, Options{ByYearDay: []int{100, -100}, ByWeekNo: []int{1, 52}}),
		MustRule(Minutely, Options{Count: mo.Some(1)}),
		MustRule(Secondly, Options{Interval: 30, Dtstart: mo.Some(start), Until: mo.Some(until)}),
	}
}

func TestRoundTrip(t *testing.T) {
	for _, r := range roundTripRules() {
		t.Run(r.String(), func(t *testing.T) {
			rec, err := Deserialize(Serialize(r))
			require.NoError(t, err)
			require.Len(t, rec.RRules, 1)
			assert.True(t, r.Equal(rec.RRules[0]), "got %s", rec.RRules[0])
		})
	}
}

func TestSerializeIdempotent(t *testing.T) {
	for _, r := range roundTripRules() {
		text := Serialize(r)
		rec, err := Deserialize(text)
		require.NoError(t, err)
		assert.Equal(t, text, Serialize(rec))
	}
}

func TestRecurrenceRoundTripAccumulates(t *testing.T) {
	text := "RRULE:FREQ=DAILY\nRRULE:FREQ=WEEKLY\nEXRULE:FREQ=MONTHLY\nEXRULE:FREQ=YEARLY\n" +
		"RDATE:20240101T000000Z\nRDATE:20240102T000000Z\nEXDATE:20240103T000000Z\nEXDATE:20240104T000000Z"

	rec, err := Deserialize(text)
	require.NoError(t, err)
	assert.Len(t, rec.RRules, 2)
	assert.Len(t, rec.ExRules, 2)
	assert.Len(t, rec.RDates, 2)
	assert.Len(t, rec.ExDates, 2)
	assert.Equal(t, text, rec.Serialize())
}
