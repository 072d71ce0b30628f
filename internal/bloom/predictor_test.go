package bloom

import (
	"testing"
	"time"

	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/climate"
)

func flatSeries(n int, ndvi float64, start string) climate.Series {
	t0, _ := time.Parse(climate.DateLayoutCompact, start)
	series := make(climate.Series, n)
	for i := range series {
		series[i] = climate.Sample{
			Date: t0.AddDate(0, 0, i).Format(climate.DateLayoutCompact),
			NDVI: ndvi,
		}
	}
	return series
}

func TestPredictInsufficientData(t *testing.T) {
	for _, n := range []int{0, 1, 13} {
		p := Predict(flatSeries(n, 0.5, "20240101"))
		if p.Date != PredictionInsufficientData {
			t.Fatalf("series len %d: date = %q, want insufficient-data sentinel", n, p.Date)
		}
		if p.Probability != 0 || p.PeakPeriod != "N/A" {
			t.Fatalf("series len %d: got (%v, %q)", n, p.Probability, p.PeakPeriod)
		}
	}
}

func TestPredictNoPattern(t *testing.T) {
	p := Predict(flatSeries(20, 0.5, "20240101"))
	if p.Date != PredictionNoPattern {
		t.Fatalf("date = %q, want no-pattern sentinel", p.Date)
	}
	if p.Probability != 0.3 || p.PeakPeriod != "Variable" {
		t.Fatalf("got (%v, %q), want (0.3, Variable)", p.Probability, p.PeakPeriod)
	}
}

func TestPredictSingleTransition(t *testing.T) {
	// First pair transitions (0.5 -> 0.7 crosses 0.6 with growth 0.2); the
	// remaining entries stay flat below the threshold.
	series := climate.Series{
		{Date: "20240101", NDVI: 0.5},
		{Date: "20240108", NDVI: 0.7},
	}
	series = append(series, flatSeries(12, 0.3, "20240115")...)

	p := Predict(series)

	if p.HistoricalBlooms != 1 {
		t.Fatalf("historical blooms = %d, want 1", p.HistoricalBlooms)
	}
	// A single transition defaults the recurrence interval to 90 days.
	if p.Date != "2024-03-31" {
		t.Fatalf("predicted date = %q, want 2024-03-31", p.Date)
	}
	if p.Probability != 0.65 {
		t.Fatalf("probability = %v, want 0.65", p.Probability)
	}
	if p.PeakPeriod != "90 días desde última floración" {
		t.Fatalf("peak period = %q", p.PeakPeriod)
	}
}

func TestPredictAverageInterval(t *testing.T) {
	series := flatSeries(20, 0.4, "20240101")
	// Transitions at the pairs starting 20240101 and 20240111.
	series[1].NDVI = 0.7
	series[2].NDVI = 0.4
	series[11].NDVI = 0.7
	series[12].NDVI = 0.4

	p := Predict(series)

	if p.HistoricalBlooms != 2 {
		t.Fatalf("historical blooms = %d, want 2", p.HistoricalBlooms)
	}
	// Gap between the two transition dates is 10 days.
	if p.PeakPeriod != "10 días desde última floración" {
		t.Fatalf("peak period = %q", p.PeakPeriod)
	}
	if p.Date != "2024-01-21" {
		t.Fatalf("predicted date = %q, want 2024-01-21", p.Date)
	}
	if p.Probability != 0.7 {
		t.Fatalf("probability = %v, want 0.7", p.Probability)
	}
}

func TestPredictProbabilityCapped(t *testing.T) {
	// Alternating values produce a transition at every other pair.
	series := make(climate.Series, 40)
	t0, _ := time.Parse(climate.DateLayoutCompact, "20240101")
	for i := range series {
		ndvi := 0.4
		if i%2 == 1 {
			ndvi = 0.7
		}
		series[i] = climate.Sample{
			Date: t0.AddDate(0, 0, i).Format(climate.DateLayoutCompact),
			NDVI: ndvi,
		}
	}

	p := Predict(series)
	if p.Probability > 0.95 {
		t.Fatalf("probability = %v, want <= 0.95", p.Probability)
	}
	if p.HistoricalBlooms == 0 {
		t.Fatal("expected transitions to be detected")
	}
}

func TestPredictNeverPanicsOnBadDates(t *testing.T) {
	series := flatSeries(20, 0.4, "20240101")
	series[1].NDVI = 0.7
	series[0].Date = "garbage"

	p := Predict(series)
	if p.Date == "" {
		t.Fatal("expected a sentinel result for unparsable dates")
	}
}
