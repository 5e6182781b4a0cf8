// Package xcal converts recurrences to and from the XML representation of
// iCalendar (RFC 6321).
package xcal

// Namespace is the xCal namespace.
const Namespace = "urn:ietf:params:xml:ns:icalendar-2.0"

// Element names used by the encoder and decoder.
const (
	TagICalendar  = "icalendar"
	TagVCalendar  = "vcalendar"
	TagVEvent     = "vevent"
	TagProperties = "properties"
	TagComponents = "components"
	TagText       = "text"
	TagDateTime   = "date-time"
	TagDate       = "date"
	TagRecur      = "recur"

	TagDtstart = "dtstart"
	TagDtend   = "dtend"
	TagRRule   = "rrule"
	TagExRule  = "exrule"
	TagRDate   = "rdate"
	TagExDate  = "exdate"
	TagProdID  = "prodid"
	TagVersion = "version"

	// TagRuleStart carries a rule's own DTSTART, which RFC 6321 has no
	// element for.
	TagRuleStart = "x-dtstart"
)

const (
	dateTimeLayout      = "2006-01-02T15:04:05Z"
	localDateTimeLayout = "2006-01-02T15:04:05"
	dateLayout          = "2006-01-02"
)
