package xcal

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyp0633/librecur/recurrence"
)

func sampleRecurrence() *recurrence.Recurrence {
	return &recurrence.Recurrence{
		Dtstart: mo.Some(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)),
		Dtend:   mo.Some(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)),
		RRules: []*recurrence.Rule{
			recurrence.MustRule(recurrence.Weekly, recurrence.Options{
				ByDay: []recurrence.Weekday{recurrence.MO, recurrence.WE, recurrence.FR},
			}),
		},
		ExRules: []*recurrence.Rule{
			recurrence.MustRule(recurrence.Monthly, recurrence.Options{
				ByDay: []recurrence.Weekday{recurrence.FR.WithIndex(-1)},
			}),
		},
		RDates:  []time.Time{time.Date(2024, 2, 3, 9, 0, 0, 0, time.UTC)},
		ExDates: []time.Time{time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC), time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)},
	}
}

func TestEncodeDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleRecurrence()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<icalendar xmlns="urn:ietf:params:xml:ns:icalendar-2.0">`)
	assert.Contains(t, out, `<text>-//cyp0633//librecur//EN</text>`)
	assert.Contains(t, out, `<date-time>2024-01-01T09:00:00Z</date-time>`)
	assert.Contains(t, out, `<byday>-1FR</byday>`)
	assert.Equal(t, 2, strings.Count(out, "<exdate>"))
}

func TestDocumentRoundTrip(t *testing.T) {
	rec := sampleRecurrence()
	empty := &recurrence.Recurrence{}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, rec, empty))

	got, err := Decode(&buf, time.UTC)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, rec.Equal(got[0]), "got %s", got[0].Serialize())
	assert.True(t, got[1].IsEmpty())
}

func TestDecodeForeignDocument(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8"?>
<icalendar xmlns="urn:ietf:params:xml:ns:icalendar-2.0">
  <vcalendar>
    <components>
      <vevent>
        <properties>
          <summary><text>Standup</text></summary>
          <dtstart>
            <parameters><tzid><text>Europe/Paris</text></tzid></parameters>
            <date-time>2024-03-04T09:30:00</date-time>
          </dtstart>
          <rrule><recur><freq>WEEKLY</freq><byday>MO</byday><byday>TH</byday></recur></rrule>
          <exdate><date>2024-03-07</date><date>2024-03-11</date></exdate>
        </properties>
      </vevent>
    </components>
  </vcalendar>
</icalendar>`

	loc := time.FixedZone("CET", 60*60)
	rec, err := DecodeString(doc, loc)
	require.NoError(t, err)

	start, ok := rec.Dtstart.Get()
	require.True(t, ok)
	assert.True(t, start.Equal(time.Date(2024, 3, 4, 9, 30, 0, 0, loc)))

	require.Len(t, rec.RRules, 1)
	assert.Equal(t, []recurrence.Weekday{recurrence.MO, recurrence.TH}, rec.RRules[0].ByDay)
	assert.Equal(t, []time.Time{
		time.Date(2024, 3, 7, 0, 0, 0, 0, loc),
		time.Date(2024, 3, 11, 0, 0, 0, 0, loc),
	}, rec.ExDates)
}

func TestDecodeErrors(t *testing.T) {
	_, err := DecodeString("<icalendar", time.UTC)
	assert.Error(t, err)

	_, err = DecodeString(`<icalendar><vcalendar/></icalendar>`, time.UTC)
	assert.ErrorIs(t, err, ErrNoEvent)

	_, err = DecodeString(`<icalendar><vcalendar><components><vevent><properties>`+
		`<rrule><recur><freq>DAILY</freq><byday>1XY</byday></recur></rrule>`+
		`</properties></vevent></components></vcalendar></icalendar>`, time.UTC)
	assert.ErrorIs(t, err, recurrence.ErrInvalidWeekdayToken)

	_, err = DecodeString(`<icalendar><vcalendar><components><vevent><properties>`+
		`<rdate><date-time>20240101</date-time></rdate>`+
		`</properties></vevent></components></vcalendar></icalendar>`, time.UTC)
	assert.ErrorIs(t, err, recurrence.ErrMalformedTimestamp)
}
