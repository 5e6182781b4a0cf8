package recurrence

import (
	"strconv"
	"strings"
)

// Weekday is a day of the week (Monday=0 ... Sunday=6) with an optional
// ordinal. Index 0 means every such weekday in the period, N>0 the Nth
// occurrence and N<0 the Nth from last.
type Weekday struct {
	Number int
	Index  int
}

var weekdayCodes = [...]string{"MO", "TU", "WE", "TH", "FR", "SA", "SU"}

var (
	MO = Weekday{Number: 0}
	TU = Weekday{Number: 1}
	WE = Weekday{Number: 2}
	TH = Weekday{Number: 3}
	FR = Weekday{Number: 4}
	SA = Weekday{Number: 5}
	SU = Weekday{Number: 6}
)

// WithIndex returns a copy of w carrying the given ordinal.
func (w Weekday) WithIndex(index int) Weekday {
	return Weekday{Number: w.Number, Index: index}
}

func (w Weekday) Valid() bool {
	return w.Number >= 0 && w.Number < len(weekdayCodes)
}

// Code is the bare two-letter token, without the ordinal.
func (w Weekday) Code() string {
	if !w.Valid() {
		return ""
	}
	return weekdayCodes[w.Number]
}

// String encodes w as a BYDAY token such as "MO", "2TU" or "-1FR".
func (w Weekday) String() string {
	if w.Index != 0 {
		return strconv.Itoa(w.Index) + w.Code()
	}
	return w.Code()
}

// ParseWeekday decodes a token of the form [+-]N?{MO|TU|WE|TH|FR|SA|SU}.
func ParseWeekday(token string) (Weekday, error) {
	token = strings.TrimSpace(token)
	if len(token) < 2 {
		return Weekday{}, &ParseError{Value: token, Err: ErrInvalidWeekdayToken}
	}

	code := strings.ToUpper(token[len(token)-2:])
	number := -1
	for i, c := range weekdayCodes {
		if c == code {
			number = i
			break
		}
	}
	if number < 0 {
		return Weekday{}, &ParseError{Value: token, Err: ErrInvalidWeekdayToken}
	}

	nth := token[:len(token)-2]
	if nth == "" {
		return Weekday{Number: number}, nil
	}
	index, err := strconv.Atoi(nth)
	if err != nil {
		return Weekday{}, &ParseError{Value: token, Err: ErrInvalidWeekdayToken}
	}
	return Weekday{Number: number, Index: index}, nil
}
