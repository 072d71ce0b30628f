package httpapi

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/bloom"
	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/climate"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *bloom.Service) {
	api := app.Group("/api")

	api.Post("/bloom-data", func(c *fiber.Ctx) error {
		var req bloomDataRequest
		if err := bind(c, &req); err != nil {
			return err
		}

		date := req.Date
		if date == "" {
			date = time.Now().UTC().Format(climate.DateLayoutISO)
		}
		compact, err := compactDate(date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		sample, assessment, species := service.BloomData(c.Context(), *req.Latitude, *req.Longitude, compact)

		return c.JSON(fiber.Map{
			"success":      true,
			"location":     fiber.Map{"lat": *req.Latitude, "lon": *req.Longitude},
			"date":         date,
			"bloom_status": assessment,
			"ndvi":         sample.NDVI,
			"evi":          sample.EVI,
			"confidence":   assessment.Confidence,
			"species_info": species,
		})
	})

	api.Post("/bloom-prediction", func(c *fiber.Ctx) error {
		var req pointRequest
		if err := bind(c, &req); err != nil {
			return err
		}

		prediction := service.PredictNext(c.Context(), *req.Latitude, *req.Longitude)

		return c.JSON(fiber.Map{
			"success":              true,
			"predicted_bloom_date": prediction.Date,
			"probability":          prediction.Probability,
			"peak_period":          prediction.PeakPeriod,
		})
	})

	api.Get("/global-bloom-map", func(c *fiber.Ctx) error {
		statuses := service.GlobalMap(c.Context())

		return c.JSON(fiber.Map{
			"success": true,
			"data":    statuses,
		})
	})

	api.Post("/time-series", func(c *fiber.Ctx) error {
		var req timeSeriesRequest
		if err := bind(c, &req); err != nil {
			return err
		}

		series, err := service.TimeSeries(c.Context(), *req.Latitude, *req.Longitude, req.StartDate, req.EndDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(fiber.Map{
			"success":      true,
			"dates":        series.Dates,
			"ndvi_values":  series.NDVI,
			"evi_values":   series.EVI,
			"bloom_events": series.BloomEvents,
		})
	})

	api.Post("/multi-year-comparison", func(c *fiber.Ctx) error {
		var req multiYearRequest
		if err := bind(c, &req); err != nil {
			return err
		}

		result, err := service.MultiYearComparison(c.Context(), *req.Latitude, *req.Longitude, req.Years)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(fiber.Map{
			"success":           true,
			"years_data":        result.YearsData,
			"trend":             result.Trend,
			"change_percentage": result.ChangePercentage,
			"climate_impact":    result.ClimateImpact,
			"interpretation":    result.Interpretation,
		})
	})

	api.Post("/conservation-alerts", func(c *fiber.Ctx) error {
		var req pointRequest
		if err := bind(c, &req); err != nil {
			return err
		}

		report := service.ConservationReport(c.Context(), *req.Latitude, *req.Longitude)

		return c.JSON(fiber.Map{
			"success":         true,
			"alerts":          report.Alerts,
			"recommendations": report.Recommendations,
			"priority_score":  report.PriorityScore,
			"priority_level":  report.PriorityLevel,
		})
	})
}

// pointRequest holds the lat/lon body shared by most endpoints. Pointer
// fields let the validator distinguish a missing coordinate from zero.
type pointRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

type bloomDataRequest struct {
	pointRequest
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type timeSeriesRequest struct {
	pointRequest
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type multiYearRequest struct {
	pointRequest
	Years []int `json:"years" validate:"omitempty,max=25,dive,gt=0"`
}

// bind parses and validates a JSON request body, mapping any failure to a
// 400 error for the central handler.
func bind(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// compactDate converts an ISO date (YYYY-MM-DD) to the provider's compact
// YYYYMMDD form.
func compactDate(iso string) (string, error) {
	t, err := time.Parse(climate.DateLayoutISO, iso)
	if err != nil {
		return "", err
	}
	return t.Format(climate.DateLayoutCompact), nil
}
