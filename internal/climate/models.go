package climate

import "time"

// Date layouts used across the climate data pipeline. The NASA POWER API and
// the historical series use the compact form; the HTTP surface uses ISO.
const (
	DateLayoutCompact = "20060102"
	DateLayoutISO     = "2006-01-02"
)

// Sample is one climate observation for a geographic point and date.
// NDVI and EVI are always derived from temperature and precipitation,
// never raw satellite pixels. A Sample is immutable once returned.
type Sample struct {
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Date            string  `json:"date"` // YYYYMMDD
	TemperatureC    float64 `json:"temperature"`
	PrecipitationMM float64 `json:"precipitation"`
	NDVI            float64 `json:"ndvi"`
	EVI             float64 `json:"evi"`
}

// Time parses the sample date in its compact layout.
func (s Sample) Time() (time.Time, error) {
	return time.Parse(DateLayoutCompact, s.Date)
}

// Series is a chronologically ascending sequence of samples, one per
// sampling date. Oldest entry first.
type Series []Sample

// BloomEvent marks a time-series step whose NDVI crossed the bloom threshold.
type BloomEvent struct {
	Date      string  `json:"date"` // YYYY-MM-DD
	Intensity float64 `json:"intensity"`
}

// TimeSeries is the weekly-step view between two dates.
type TimeSeries struct {
	Dates       []string     `json:"dates"` // YYYY-MM-DD
	NDVI        []float64    `json:"ndvi"`
	EVI         []float64    `json:"evi"`
	BloomEvents []BloomEvent `json:"bloom_events"`
}
