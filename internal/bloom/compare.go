package bloom

import (
	"fmt"
	"math"

	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/common"
)

// Spring sampling months per hemisphere, sampled on day 15 of each.
var (
	northernSpringMonths = []int{3, 4, 5}
	southernSpringMonths = []int{9, 10, 11}

	northernMonthLabels = []string{"Marzo", "Abril", "Mayo"}
	southernMonthLabels = []string{"Sep", "Oct", "Nov"}
)

// SpringMonths returns the hemisphere-appropriate sampling months and their
// display labels for a latitude.
func SpringMonths(lat float64) (months []int, labels []string) {
	if lat >= 0 {
		return northernSpringMonths, northernMonthLabels
	}
	return southernSpringMonths, southernMonthLabels
}

// YearComparison is the spring NDVI summary of one year.
type YearComparison struct {
	Year    int       `json:"year"`
	AvgNDVI float64   `json:"avg_ndvi"`
	Months  []string  `json:"months"`
	Values  []float64 `json:"values"`
}

// MultiYearResult compares spring vegetation across years to surface
// long-term trends.
type MultiYearResult struct {
	YearsData        []YearComparison `json:"years_data"`
	Trend            string           `json:"trend"`
	ChangePercentage float64          `json:"change_percentage"`
	ClimateImpact    string           `json:"climate_impact"`
	Interpretation   string           `json:"interpretation"`
}

// AnalyzeYearData derives trend, percent change, impact tier, and narrative
// from per-year spring averages, ordered as requested.
func AnalyzeYearData(yearsData []YearComparison) MultiYearResult {
	first := yearsData[0].AvgNDVI
	last := yearsData[len(yearsData)-1].AvgNDVI

	trend := "decreasing"
	if last > first {
		trend = "increasing"
	}

	changePct := 0.0
	if first > 0 {
		changePct = (last - first) / first * 100
	}
	changePct = common.Round(changePct, 1)

	var impact string
	switch {
	case math.Abs(changePct) > 15:
		impact = "Crítico - Cambio significativo detectado"
	case math.Abs(changePct) > 8:
		impact = "Moderado - Requiere monitoreo"
	default:
		impact = "Bajo - Variación normal"
	}

	verb := "disminuido"
	if trend == "increasing" {
		verb = "aumentado"
	}

	return MultiYearResult{
		YearsData:        yearsData,
		Trend:            trend,
		ChangePercentage: changePct,
		ClimateImpact:    impact,
		Interpretation: fmt.Sprintf("La floración ha %s un %.1f%% en los últimos %d años",
			verb, math.Abs(changePct), len(yearsData)),
	}
}
