package climate

import (
	"math"
	"math/rand"
	"time"

	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/common"
)

const optimalTempC = 20.0

// SimulatedNDVI derives a vegetation greenness proxy from climate conditions.
// Deterministic pure function; result is always within [0, 0.95].
func SimulatedNDVI(tempC, precipMM float64) float64 {
	tempFactor := common.Clamp(1-math.Abs(tempC-optimalTempC)/30, 0, 1)

	precipFactor := 0.3
	if precipMM > 0 {
		precipFactor = math.Min(precipMM/10, 1)
	}

	ndvi := (tempFactor*0.6 + precipFactor*0.4) * 0.9
	return common.Clamp(ndvi, 0, 0.95)
}

// DeriveEVI computes the enhanced vegetation index from NDVI.
// The 1.2 multiplier stops applying at ndvi >= 0.83; downstream consumers
// depend on this exact cutover, so keep the discontinuity as-is.
func DeriveEVI(ndvi float64) float64 {
	if ndvi < 0.83 {
		return ndvi * 1.2
	}
	return ndvi
}

// FallbackSample builds a synthetic sample when the remote provider is
// unavailable. It never fails; the latitude narrows the random NDVI spread
// toward the poles (zero width at |lat| = 90).
func FallbackSample(lat, lon float64, date string) Sample {
	if date == "" {
		date = time.Now().UTC().Format(DateLayoutCompact)
	}

	seasonFactor := math.Abs(lat) / 90
	baseNDVI := 0.4 + rand.Float64()*0.3*(1-seasonFactor)

	return Sample{
		Latitude:        lat,
		Longitude:       lon,
		Date:            date,
		TemperatureC:    15 + (rand.Float64()*20 - 5),
		PrecipitationMM: rand.Float64() * 20,
		NDVI:            common.Round(baseNDVI, 3),
		EVI:             common.Round(baseNDVI*1.15, 3),
	}
}
