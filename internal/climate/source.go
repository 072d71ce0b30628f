package climate

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/common"
	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/metrics"
)

// BloomEventThreshold is the NDVI level above which a time-series step is
// flagged as a bloom event.
const BloomEventThreshold = 0.6

// seriesWorkers bounds the number of concurrent provider lookups when
// assembling historical and time series.
const seriesWorkers = 8

// Source produces climate samples for points and dates. A remote provider is
// consulted first; any transport, timeout, or payload failure is absorbed into
// a synthetic fallback sample. Sample never fails and never blocks longer
// than the provider client timeout.
type Source struct {
	provider Provider
	now      func() time.Time
}

// NewSource creates a Source backed by the given provider. A nil provider is
// allowed and routes every sample through the synthetic fallback.
func NewSource(provider Provider) *Source {
	return &Source{
		provider: provider,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Sample returns the climate sample for a point and compact date (YYYYMMDD).
// An empty date means today.
func (s *Source) Sample(ctx context.Context, lat, lon float64, date string) Sample {
	if date == "" {
		date = s.now().Format(DateLayoutCompact)
	}

	if s.provider == nil {
		metrics.FallbackSamplesTotal.Inc()
		return FallbackSample(lat, lon, date)
	}

	reading, err := s.provider.Fetch(ctx, lat, lon, date)
	if err != nil {
		log.Printf("climate: provider %s fetch failed for (%.4f, %.4f) on %s: %v; using fallback",
			s.provider.Name(), lat, lon, date, err)
		metrics.FallbackSamplesTotal.Inc()
		return FallbackSample(lat, lon, date)
	}

	ndvi := SimulatedNDVI(reading.TemperatureC, reading.PrecipitationMM)
	evi := DeriveEVI(ndvi)

	return Sample{
		Latitude:        lat,
		Longitude:       lon,
		Date:            date,
		TemperatureC:    reading.TemperatureC,
		PrecipitationMM: reading.PrecipitationMM,
		NDVI:            common.Round(ndvi, 3),
		EVI:             common.Round(evi, 3),
	}
}

// HistoricalSeries samples once per day for the given number of days back
// from now and returns the series chronologically ascending (oldest first).
// Lookups are independent and run concurrently; results are re-ordered into
// the canonical sequence before returning.
func (s *Source) HistoricalSeries(ctx context.Context, lat, lon float64, days int) Series {
	if days <= 0 {
		days = 90
	}

	end := s.now()
	dates := make([]string, days)
	for i := 0; i < days; i++ {
		// Index 0 is the oldest date.
		dates[i] = end.AddDate(0, 0, -(days - 1 - i)).Format(DateLayoutCompact)
	}

	return s.sampleAll(ctx, lat, lon, dates)
}

// TimeSeriesRange samples in 7-day steps from start to end (ISO dates,
// inclusive of start and any step not after end) and flags bloom events.
func (s *Source) TimeSeriesRange(ctx context.Context, lat, lon float64, startDate, endDate string) (TimeSeries, error) {
	start, err := time.Parse(DateLayoutISO, startDate)
	if err != nil {
		return TimeSeries{}, fmt.Errorf("invalid start_date %q: %w", startDate, err)
	}
	end, err := time.Parse(DateLayoutISO, endDate)
	if err != nil {
		return TimeSeries{}, fmt.Errorf("invalid end_date %q: %w", endDate, err)
	}
	if end.Before(start) {
		return TimeSeries{}, fmt.Errorf("end_date %s is before start_date %s", endDate, startDate)
	}

	var dates []string
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 7) {
		dates = append(dates, cur.Format(DateLayoutCompact))
	}

	series := s.sampleAll(ctx, lat, lon, dates)

	ts := TimeSeries{
		Dates:       make([]string, 0, len(series)),
		NDVI:        make([]float64, 0, len(series)),
		EVI:         make([]float64, 0, len(series)),
		BloomEvents: []BloomEvent{},
	}
	for _, sample := range series {
		day, _ := sample.Time()
		iso := day.Format(DateLayoutISO)

		ts.Dates = append(ts.Dates, iso)
		ts.NDVI = append(ts.NDVI, sample.NDVI)
		ts.EVI = append(ts.EVI, sample.EVI)

		if sample.NDVI > BloomEventThreshold {
			ts.BloomEvents = append(ts.BloomEvents, BloomEvent{Date: iso, Intensity: sample.NDVI})
		}
	}
	return ts, nil
}

// sampleAll fetches one sample per date concurrently, preserving date order.
func (s *Source) sampleAll(ctx context.Context, lat, lon float64, dates []string) Series {
	series := make(Series, len(dates))

	var wg sync.WaitGroup
	sem := make(chan struct{}, seriesWorkers)

	for i, date := range dates {
		i, date := i, date
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			series[i] = s.Sample(ctx, lat, lon, date)
		}()
	}

	wg.Wait()
	return series
}
