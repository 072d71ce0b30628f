package climate

import "context"

// Reading is a single provider's raw climate measurement for a point and date.
type Reading struct {
	TemperatureC    float64
	PrecipitationMM float64
}

// Provider abstracts a remote climate data source (e.g. NASA POWER).
// Fetch performs exactly one attempt; the caller decides what failure means.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, lat, lon float64, date string) (Reading, error)
}
