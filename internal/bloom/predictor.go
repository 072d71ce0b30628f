package bloom

import (
	"fmt"
	"math"
	"time"

	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/climate"
	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/common"
)

// Predictor tuning; identical thresholds gate bloom detection everywhere.
const (
	bloomThresholdNDVI  = 0.6
	growthRateThreshold = 0.05
	minSeriesLength     = 14
	defaultIntervalDays = 90
)

// Sentinel prediction dates returned when no forecast is possible.
const (
	PredictionInsufficientData = "Datos insuficientes"
	PredictionNoPattern        = "No hay patrón histórico"
)

// Prediction estimates the next bloom date from a historical series.
type Prediction struct {
	Date             string  `json:"date"`
	Probability      float64 `json:"probability"`
	PeakPeriod       string  `json:"peak_period"`
	HistoricalBlooms int     `json:"historical_blooms,omitempty"`
}

// Predict scans a chronologically ascending series for bloom transitions and
// extrapolates the next bloom date from their average recurrence interval.
// It fails soft: short series and unparsable dates yield sentinel results,
// never errors.
func Predict(series climate.Series) Prediction {
	if len(series) < minSeriesLength {
		return Prediction{
			Date:        PredictionInsufficientData,
			Probability: 0,
			PeakPeriod:  "N/A",
		}
	}

	// A transition is a step whose destination crosses the bloom threshold
	// with enough NDVI growth. The transition is dated at the step origin.
	var transitionDates []string
	for i := 0; i < len(series)-1; i++ {
		curr, next := series[i], series[i+1]
		if next.NDVI > bloomThresholdNDVI && next.NDVI-curr.NDVI > growthRateThreshold {
			transitionDates = append(transitionDates, curr.Date)
		}
	}

	if len(transitionDates) == 0 {
		return Prediction{
			Date:        PredictionNoPattern,
			Probability: 0.3,
			PeakPeriod:  "Variable",
		}
	}

	avgInterval := averageIntervalDays(transitionDates)

	lastBloom, err := time.Parse(climate.DateLayoutCompact, transitionDates[len(transitionDates)-1])
	if err != nil {
		return Prediction{
			Date:        PredictionNoPattern,
			Probability: 0.3,
			PeakPeriod:  "Variable",
		}
	}

	predicted := lastBloom.AddDate(0, 0, avgInterval)
	probability := math.Min(0.95, 0.6+float64(len(transitionDates))*0.05)

	return Prediction{
		Date:             predicted.Format(climate.DateLayoutISO),
		Probability:      common.Round(probability, 2),
		PeakPeriod:       fmt.Sprintf("%d días desde última floración", avgInterval),
		HistoricalBlooms: len(transitionDates),
	}
}

// averageIntervalDays is the mean day gap between consecutive transition
// dates, truncated to whole days. Fewer than two dates default to 90.
func averageIntervalDays(dates []string) int {
	if len(dates) < 2 {
		return defaultIntervalDays
	}

	var totalDays, count int
	for i := 0; i < len(dates)-1; i++ {
		d1, err1 := time.Parse(climate.DateLayoutCompact, dates[i])
		d2, err2 := time.Parse(climate.DateLayoutCompact, dates[i+1])
		if err1 != nil || err2 != nil {
			continue
		}
		totalDays += int(d2.Sub(d1).Hours() / 24)
		count++
	}

	if count == 0 {
		return defaultIntervalDays
	}
	return totalDays / count
}
