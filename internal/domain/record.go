package domain

// WeatherRecord is one city tile scraped from the forecast map. Records are
// immutable once extraction completes: LocalName is filled in from the
// translation mapping before the record is returned, falling back to
// SourceName when no translation could be obtained.
type WeatherRecord struct {
	// SourceName is the Japanese city name as shown on the page.
	SourceName string `json:"source_name"`
	// LocalName is the Russian city name.
	LocalName string `json:"local_name"`
	// MaxTemp is the daily maximum in Celsius as text. Empty means the page
	// reported no value ("-" placeholder), which is data, not an error.
	MaxTemp string `json:"max_temp"`
	// ConditionIcon is the raw alt text of the weather icon.
	ConditionIcon string `json:"condition_icon"`
}

// CategorizedRecord is a WeatherRecord with its derived canonical condition
// phrase. It exists only as input to summary generation and is never persisted.
type CategorizedRecord struct {
	WeatherRecord
	Category string `json:"condition_category"`
}
