package bloom

import (
	"fmt"
	"math"

	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/climate"
	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/common"
)

// Status represents a qualitative bloom state.
type Status string

const (
	StatusNoBloom     Status = "no_bloom"
	StatusEarlyBloom  Status = "early_bloom"
	StatusActiveBloom Status = "active_bloom"
	StatusPeakBloom   Status = "peak_bloom"
)

// Fixed display colors per status.
const (
	colorPeak   = "#00ff00"
	colorActive = "#90ee90"
	colorEarly  = "#ffff00"
	colorNone   = "#808080"
)

// Assessment is the bloom evaluation of a single climate sample. It is
// recomputed on every call and has no independent lifecycle.
type Assessment struct {
	Status     Status  `json:"status"`
	Level      float64 `json:"level"`
	Confidence float64 `json:"confidence"`
	Color      string  `json:"color"`
	NDVI       float64 `json:"ndvi"`
	EVI        float64 `json:"evi"`
	Message    string  `json:"message"`
}

// Score maps a climate sample to a bloom assessment. Pure and deterministic:
// the same sample always yields the same assessment.
func Score(s climate.Sample) Assessment {
	level := bloomLevel(s)

	var (
		status     Status
		confidence float64
		color      string
	)

	// Bands are evaluated top-down; first match wins.
	switch {
	case level >= 70:
		status = StatusPeakBloom
		confidence = 0.85 + (level-70)/100
		color = colorPeak
	case level >= 50:
		status = StatusActiveBloom
		confidence = 0.70 + (level-50)/100
		color = colorActive
	case level >= 30:
		status = StatusEarlyBloom
		confidence = 0.55 + (level-30)/100
		color = colorEarly
	default:
		status = StatusNoBloom
		confidence = 0.40 + level/100
		color = colorNone
	}

	return Assessment{
		Status:     status,
		Level:      level,
		Confidence: common.Round(math.Min(confidence, 0.95), 2),
		Color:      color,
		NDVI:       s.NDVI,
		EVI:        s.EVI,
		Message:    statusMessage(status, level),
	}
}

// bloomLevel combines vegetation indices, temperature, and precipitation into
// a 0-100 intensity score, rounded to one decimal.
func bloomLevel(s climate.Sample) float64 {
	vegFactor := (s.NDVI + s.EVI) / 2 * 40

	tempDeviation := math.Abs(s.TemperatureC - 20)
	tempFactor := math.Max(0, (10-tempDeviation)/10) * 30

	precipFactor := 5.0
	if s.PrecipitationMM > 0 {
		precipFactor = math.Min(s.PrecipitationMM/15, 1) * 30
	}

	return common.Round(math.Min(vegFactor+tempFactor+precipFactor, 100), 1)
}

func statusMessage(status Status, level float64) string {
	switch status {
	case StatusPeakBloom:
		return fmt.Sprintf("🌸 Floración máxima detectada (%.1f%% intensidad)", level)
	case StatusActiveBloom:
		return fmt.Sprintf("🌺 Floración activa (%.1f%% intensidad)", level)
	case StatusEarlyBloom:
		return fmt.Sprintf("🌱 Inicio de floración (%.1f%% intensidad)", level)
	default:
		return fmt.Sprintf("🍃 No hay floración activa (%.1f%% vegetación)", level)
	}
}
