package domain

import "golang.org/x/text/language"

var supportedLocales = []language.Tag{language.English, language.Spanish, language.Italian}

var localeMatcher = language.NewMatcher(supportedLocales)

// hour -> label, one table per supported base language.
var timeOfDayLabels = map[string][24]string{
	"en": {
		"Midnight",
		"Late Night", "Late Night", "Late Night",
		"Early Morning", "Early Morning",
		"Morning", "Morning", "Morning", "Morning",
		"Late Morning", "Late Morning",
		"Noon",
		"Afternoon", "Afternoon", "Afternoon",
		"Late Afternoon", "Late Afternoon",
		"Evening", "Evening",
		"Night", "Night", "Night",
		"Late Night",
	},
	"es": {
		"Medianoche",
		"Madrugada", "Madrugada", "Madrugada", "Madrugada", "Madrugada",
		"Mañana", "Mañana", "Mañana", "Mañana",
		"Media Mañana", "Media Mañana",
		"Mediodía",
		"Tarde", "Tarde", "Tarde", "Tarde", "Tarde",
		"Noche", "Noche", "Noche", "Noche", "Noche", "Noche",
	},
	"it": {
		"Mezzanotte",
		"Notte Fonda", "Notte Fonda", "Notte Fonda",
		"Prima Mattina", "Prima Mattina",
		"Mattina", "Mattina", "Mattina", "Mattina",
		"Tarda Mattina", "Tarda Mattina",
		"Mezzogiorno",
		"Pomeriggio", "Pomeriggio", "Pomeriggio",
		"Tardo Pomeriggio", "Tardo Pomeriggio",
		"Sera", "Sera",
		"Notte", "Notte", "Notte", "Notte",
	},
}

// ResolveLocale maps a BCP 47 tag to one of en, es or it. Anything the
// matcher cannot place falls back to en.
func ResolveLocale(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return "en"
	}
	matched, _, conf := localeMatcher.Match(tag)
	if conf == language.No {
		return "en"
	}
	base, _ := matched.Base()
	if _, ok := timeOfDayLabels[base.String()]; !ok {
		return "en"
	}
	return base.String()
}

// TimeOfDayLabel describes a local hour, e.g. "Late Afternoon" for 16.
func TimeOfDayLabel(locale string, hour int) string {
	if hour < 0 || hour > 23 {
		return ""
	}
	return timeOfDayLabels[ResolveLocale(locale)][hour]
}
