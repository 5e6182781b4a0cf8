package recurrence

import "strings"

// Frequency is the base period of a rule. Its ordinal is part of the
// wire contract and indexes the display phrase tables.
type Frequency int

const (
	Yearly Frequency = iota
	Monthly
	Weekly
	Daily
	Hourly
	Minutely
	Secondly
)

var frequencyNames = [...]string{
	"YEARLY",
	"MONTHLY",
	"WEEKLY",
	"DAILY",
	"HOURLY",
	"MINUTELY",
	"SECONDLY",
}

var frequencyByName = func() map[string]Frequency {
	m := make(map[string]Frequency, len(frequencyNames))
	for i, name := range frequencyNames {
		m[name] = Frequency(i)
	}
	return m
}()

// Frequencies lists every frequency in ordinal order.
func Frequencies() []Frequency {
	out := make([]Frequency, len(frequencyNames))
	for i := range frequencyNames {
		out[i] = Frequency(i)
	}
	return out
}

func (f Frequency) String() string {
	if !f.Valid() {
		return "UNKNOWN"
	}
	return frequencyNames[f]
}

func (f Frequency) Valid() bool {
	return f >= Yearly && int(f) < len(frequencyNames)
}

// ParseFrequency looks up a FREQ token. Matching ignores case.
func ParseFrequency(name string) (Frequency, bool) {
	f, ok := frequencyByName[strings.ToUpper(strings.TrimSpace(name))]
	return f, ok
}
