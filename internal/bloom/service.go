package bloom

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/climate"
	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/common"
	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/metrics"
)

// historicalDays is the lookback window used by bloom predictions.
const historicalDays = 90

// DefaultComparisonYears are used when a multi-year comparison request does
// not name any years.
var DefaultComparisonYears = []int{2023, 2024, 2025}

// Service orchestrates the climate source and the scoring heuristics for the
// request handlers. It is stateless per request; the only shared state is the
// region cache behind the Store interface.
type Service struct {
	source *climate.Source
	store  Store
}

// NewService creates a Service. The store may be nil, in which case the
// global map is always computed live.
func NewService(source *climate.Source, store Store) *Service {
	return &Service{source: source, store: store}
}

// BloomData samples the climate for a point and date and runs the full
// assessment pipeline over it.
func (s *Service) BloomData(ctx context.Context, lat, lon float64, date string) (climate.Sample, Assessment, Inference) {
	sample := s.source.Sample(ctx, lat, lon, date)
	assessment := Score(sample)
	inference := Classify(sample, lat)
	return sample, assessment, inference
}

// PredictNext assembles the 90-day historical series for a point and
// extrapolates the next bloom date from it.
func (s *Service) PredictNext(ctx context.Context, lat, lon float64) Prediction {
	series := s.source.HistoricalSeries(ctx, lat, lon, historicalDays)
	return Predict(series)
}

// TimeSeries exposes the weekly-step series between two ISO dates.
func (s *Service) TimeSeries(ctx context.Context, lat, lon float64, startDate, endDate string) (climate.TimeSeries, error) {
	return s.source.TimeSeriesRange(ctx, lat, lon, startDate, endDate)
}

// GlobalMap returns the bloom status of all fixed map regions, in declaration
// order. Cached statuses are preferred; misses are computed live and cached.
// The fallback sample guarantees every region resolves.
func (s *Service) GlobalMap(ctx context.Context) []RegionStatus {
	statuses := make([]RegionStatus, 0, len(GlobalRegions))
	for _, region := range GlobalRegions {
		if s.store != nil {
			if rs, err := s.store.LatestRegion(region.Name); err == nil {
				statuses = append(statuses, rs)
				continue
			}
		}

		rs := s.assessRegion(ctx, region)
		if s.store != nil {
			s.store.SaveRegion(rs)
		}
		statuses = append(statuses, rs)
	}
	return statuses
}

// RefreshGlobalMap re-assesses every map region and caches the results. It is
// the scheduler's entry point for pre-warming the global map.
func (s *Service) RefreshGlobalMap(ctx context.Context) {
	if s.store == nil {
		return
	}
	for _, region := range GlobalRegions {
		s.store.SaveRegion(s.assessRegion(ctx, region))
	}
	metrics.GlobalMapRefreshesTotal.Inc()
	log.Printf("bloom: refreshed global map cache for %d regions", len(GlobalRegions))
}

func (s *Service) assessRegion(ctx context.Context, region Region) RegionStatus {
	sample := s.source.Sample(ctx, region.Lat, region.Lon, "")
	assessment := Score(sample)
	return RegionStatus{
		Name:       region.Name,
		Lat:        region.Lat,
		Lon:        region.Lon,
		BloomLevel: assessment.Level,
		Status:     assessment.Status,
		Timestamp:  time.Now().UTC(),
	}
}

// MultiYearComparison averages spring NDVI per year over the hemisphere
// appropriate months and derives the long-term trend.
func (s *Service) MultiYearComparison(ctx context.Context, lat, lon float64, years []int) (MultiYearResult, error) {
	if len(years) == 0 {
		years = DefaultComparisonYears
	}

	months, labels := SpringMonths(lat)

	yearsData := make([]YearComparison, 0, len(years))
	for _, year := range years {
		if year <= 0 {
			return MultiYearResult{}, fmt.Errorf("invalid year %d", year)
		}

		values := make([]float64, 0, len(months))
		var sum float64
		for _, month := range months {
			date := fmt.Sprintf("%d%02d15", year, month)
			sample := s.source.Sample(ctx, lat, lon, date)
			values = append(values, sample.NDVI)
			sum += sample.NDVI
		}

		yearsData = append(yearsData, YearComparison{
			Year:    year,
			AvgNDVI: common.Round(sum/float64(len(values)), 3),
			Months:  labels,
			Values:  values,
		})
	}

	return AnalyzeYearData(yearsData), nil
}

// ConservationReport samples the current conditions for a point and runs the
// alert threshold rules over them.
func (s *Service) ConservationReport(ctx context.Context, lat, lon float64) ConservationReport {
	sample := s.source.Sample(ctx, lat, lon, "")
	assessment := Score(sample)
	return BuildConservationReport(sample, assessment)
}
