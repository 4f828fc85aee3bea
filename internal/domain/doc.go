// Package domain models the NHK weekly weather forecast data that the bot
// scrapes, translates, and summarizes.
//
// # Data Source
//
// Weather records come from the NHK disaster/weather portal
// (https://www.nhk.or.jp/kishou-saigai/), which renders a weekly forecast map
// with one tile per city. Each tile carries the Japanese city name, an icon
// whose alt text describes the condition, and the daily maximum temperature
// in Celsius. The page builds the map client-side, so extraction happens in a
// headless browser after a settle delay rather than over a data API.
//
// # Conventions
//
// Temperature:
//
//	The page shows "-" when a maximum temperature is not reported. That
//	placeholder is normalized to the empty string during extraction; an empty
//	MaxTemp means "no data" and must never be rendered as a temperature.
//
// Condition alt text:
//
//	Icon alt texts are short Japanese descriptors, sometimes compound:
//	"晴れ時々くもり" (sunny, at times cloudy), "くもり時々雨" (cloudy, at
//	times rain), "雨時々やむ" (rain with breaks). [CategorizeCondition] maps
//	them to canonical Russian phrases, with compound patterns checked before
//	their constituent simple ones.
//
// Translation validity:
//
//	A translated city name is accepted only if it contains at least one
//	Cyrillic rune, the proxy for "the model actually translated instead of
//	echoing Japanese back". See [ContainsCyrillic].
//
// Report date:
//
//	The digest is written for the calendar day in Japan Standard Time
//	(UTC+9), not the host's local day. See [ReportDate].
package domain
