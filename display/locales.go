package display

import (
	"strings"

	"golang.org/x/text/language"
)

// English is the default phrase table.
var English = &Phrases{
	Language:            "en",
	Frequencies:         []string{"annually", "monthly", "weekly", "daily", "hourly", "minutely", "secondly"},
	TimeIntervalsPlural: []string{"years", "months", "weeks", "days", "hours", "minutes", "seconds"},
	Weekdays:            []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"},
	WeekdaysShort:       []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"},
	Months: []string{
		"january", "february", "march", "april", "may", "june",
		"july", "august", "september", "october", "november", "december",
	},
	MonthsShort: []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"},
	WeekdaysPosition: map[int]string{
		1:  "first %(weekday)s",
		2:  "second %(weekday)s",
		3:  "third %(weekday)s",
		4:  "fourth %(weekday)s",
		5:  "fifth %(weekday)s",
		-1: "last %(weekday)s",
		-2: "second last %(weekday)s",
		-3: "third last %(weekday)s",
		-4: "fourth last %(weekday)s",
		-5: "fifth last %(weekday)s",
	},
	WeekdaysPositionShort: map[int]string{
		1:  "1st %(weekday)s",
		2:  "2nd %(weekday)s",
		3:  "3rd %(weekday)s",
		4:  "4th %(weekday)s",
		5:  "5th %(weekday)s",
		-1: "last %(weekday)s",
		-2: "2nd last %(weekday)s",
		-3: "3rd last %(weekday)s",
		-4: "4th last %(weekday)s",
		-5: "5th last %(weekday)s",
	},
	LastOfMonth: map[int]string{
		-1: "last day",
		-2: "second last day",
		-3: "third last day",
		-4: "fourth last day",
	},
	LastOfMonthShort: map[int]string{
		-1: "last",
		-2: "2nd last",
		-3: "3rd last",
		-4: "4th last",
	},
	Tokens: Tokens{
		EveryNumberFreq: "every %(number)s %(freq)s",
		Each:            "each %(items)s",
		OnTheItems:      "on the %(items)s",
		From:            "from %(date)s",
		Until:           "until %(date)s",
		Count:           "%(number)s time",
		CountPlural:     "%(number)s times",
	},
	Mode: ModeTokens{
		Inclusion: "including",
		Exclusion: "excluding",
	},
	DayFormat: "%(weekday)s, %(month)s %(day)s, %(year)s",
}

// French is a built-in phrase table for fr.
var French = &Phrases{
	Language:            "fr",
	Frequencies:         []string{"annuellement", "mensuellement", "hebdomadairement", "quotidiennement", "toutes les heures", "toutes les minutes", "toutes les secondes"},
	TimeIntervalsPlural: []string{"ans", "mois", "semaines", "jours", "heures", "minutes", "secondes"},
	Weekdays:            []string{"lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi", "dimanche"},
	WeekdaysShort:       []string{"lun", "mar", "mer", "jeu", "ven", "sam", "dim"},
	Months: []string{
		"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre",
	},
	MonthsShort: []string{"janv", "févr", "mars", "avr", "mai", "juin", "juil", "août", "sept", "oct", "nov", "déc"},
	WeekdaysPosition: map[int]string{
		1:  "premier %(weekday)s",
		2:  "deuxième %(weekday)s",
		3:  "troisième %(weekday)s",
		4:  "quatrième %(weekday)s",
		5:  "cinquième %(weekday)s",
		-1: "dernier %(weekday)s",
		-2: "avant-dernier %(weekday)s",
	},
	WeekdaysPositionShort: map[int]string{
		1:  "1er %(weekday)s",
		2:  "2e %(weekday)s",
		3:  "3e %(weekday)s",
		4:  "4e %(weekday)s",
		5:  "5e %(weekday)s",
		-1: "dernier %(weekday)s",
		-2: "avant-dernier %(weekday)s",
	},
	LastOfMonth: map[int]string{
		-1: "dernier jour",
		-2: "avant-dernier jour",
	},
	LastOfMonthShort: map[int]string{
		-1: "dernier",
		-2: "avant-dernier",
	},
	Tokens: Tokens{
		EveryNumberFreq: "tous les %(number)s %(freq)s",
		Each:            "chaque %(items)s",
		OnTheItems:      "le %(items)s",
		From:            "à partir du %(date)s",
		Until:           "jusqu'au %(date)s",
		Count:           "%(number)s fois",
		CountPlural:     "%(number)s fois",
	},
	Mode: ModeTokens{
		Inclusion: "inclure",
		Exclusion: "exclure",
	},
	DayFormat: "%(weekday)s %(day)s %(month)s %(year)s",
}

var builtins = []*Phrases{English, French}

var builtinMatcher = language.NewMatcher([]language.Tag{language.English, language.French})

// Lookup returns the built-in table closest to lang, English when nothing
// matches.
func Lookup(lang string) *Phrases {
	tag, err := language.Parse(lang)
	if err != nil {
		return English
	}
	_, idx, conf := builtinMatcher.Match(tag)
	if conf == language.No {
		return English
	}
	return builtins[idx]
}

// ordinalIndicators maps a base language to the suffix written after a
// month day ("1st", "1er", "1°").
var ordinalIndicators = map[string]func(day int) string{
	"en": func(day int) string {
		if day%100 >= 11 && day%100 <= 13 {
			return "th"
		}
		switch day % 10 {
		case 1:
			return "st"
		case 2:
			return "nd"
		case 3:
			return "rd"
		}
		return "th"
	},
	"fr": func(day int) string {
		if day == 1 {
			return "er"
		}
		return ""
	},
	"it": func(int) string {
		return "°"
	},
}

// OrdinalIndicator returns the suffix for day in lang, trying the full tag
// first and then its base language. Unknown languages get no suffix.
func OrdinalIndicator(lang string, day int) string {
	if f, ok := ordinalIndicators[strings.ToLower(lang)]; ok {
		return f(day)
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return ""
	}
	base, _ := tag.Base()
	if f, ok := ordinalIndicators[base.String()]; ok {
		return f(day)
	}
	return ""
}

func languageTag(lang string) language.Tag {
	tag, err := language.Parse(lang)
	if err != nil {
		return language.English
	}
	return tag
}
