package domain

import "strings"

// conditionPatterns maps icon alt-text substrings to canonical Russian
// condition phrases. Order matters: compound descriptors must come before the
// simple patterns they contain ("晴れ時々くもり" before "晴"), and the
// tie-break is strictly list order.
var conditionPatterns = []struct {
	substr   string
	category string
}{
	{"雷", "гроза"},
	{"雪", "снег"},
	{"晴れ時々くもり", "солнечно, временами облачно"},
	{"くもり時々雨", "облачно, временами дождь"},
	{"雨時々やむ", "дождь с прояснениями"},
	{"雨", "дождь"},
	{"晴", "солнечно"},
	{"くも", "облачно"},
	{"曇", "облачно"},
}

// CategorizeCondition maps a weather icon alt text to its canonical phrase
// using first-match-wins substring patterns. Unrecognized text is returned
// unchanged, so already-canonical phrases pass through as-is.
func CategorizeCondition(alt string) string {
	for _, p := range conditionPatterns {
		if strings.Contains(alt, p.substr) {
			return p.category
		}
	}
	return alt
}
