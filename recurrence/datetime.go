package recurrence

import (
	"strconv"
	"strings"
	"time"
)

const basicUTCLayout = "20060102T150405Z"

// FormatDateTime renders t as a basic-format UTC timestamp
// (YYYYMMDDTHHMMSSZ). Sub-second precision is dropped.
func FormatDateTime(t time.Time) string {
	return t.UTC().Format(basicUTCLayout)
}

// ParseDateTime decodes YYYYMMDD or YYYYMMDDTHHMMSS[Z]. Values without a
// trailing Z are wall-clock times in time.Local.
func ParseDateTime(text string) (time.Time, error) {
	return ParseDateTimeIn(text, time.Local)
}

// ParseDateTimeIn is ParseDateTime with an explicit zone for values that
// carry no Z suffix.
func ParseDateTimeIn(text string, loc *time.Location) (time.Time, error) {
	text = strings.TrimSpace(text)
	malformed := func() (time.Time, error) {
		return time.Time{}, &ParseError{Value: text, Err: ErrMalformedTimestamp}
	}

	if len(text) < 8 {
		return malformed()
	}

	var fields [6]int
	groups := [][2]int{{0, 4}, {4, 6}, {6, 8}}
	if strings.IndexByte(text, 'T') > 0 {
		if len(text) < 15 {
			return malformed()
		}
		groups = append(groups, [2]int{9, 11}, [2]int{11, 13}, [2]int{13, 15})
	}
	for i, g := range groups {
		n, ok := parseDigits(text[g[0]:g[1]])
		if !ok {
			return malformed()
		}
		fields[i] = n
	}

	if strings.HasSuffix(text, "Z") {
		loc = time.UTC
	} else if loc == nil {
		loc = time.Local
	}
	return time.Date(fields[0], time.Month(fields[1]), fields[2],
		fields[3], fields[4], fields[5], 0, loc), nil
}

func parseDigits(s string) (int, bool) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}
