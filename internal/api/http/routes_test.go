package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/bloom"
	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/climate"
)

// newTestApp builds an app with the same central error handler as main, over
// a service whose climate source always uses the synthetic fallback.
func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		},
	})

	service := bloom.NewService(climate.NewSource(nil), nil)
	RegisterRoutes(app, service)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (*http.Response, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decoding body %s: %v", raw, err)
	}
	return payload
}

func TestBloomDataEndpoint(t *testing.T) {
	app := newTestApp()

	resp, payload := postJSON(t, app, "/api/bloom-data",
		`{"latitude": 0, "longitude": -60.0, "date": "2024-01-15"}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if payload["success"] != true {
		t.Fatalf("success = %v, want true", payload["success"])
	}
	if payload["date"] != "2024-01-15" {
		t.Fatalf("date = %v, want echo of the request date", payload["date"])
	}

	bloomStatus, ok := payload["bloom_status"].(map[string]interface{})
	if !ok {
		t.Fatalf("bloom_status missing: %v", payload)
	}
	if conf := bloomStatus["confidence"].(float64); conf > 0.95 {
		t.Fatalf("confidence = %v, want <= 0.95", conf)
	}
	if _, ok := payload["species_info"].(map[string]interface{}); !ok {
		t.Fatalf("species_info missing: %v", payload)
	}
}

func TestBloomDataValidation(t *testing.T) {
	app := newTestApp()

	cases := []struct {
		name string
		body string
	}{
		{"missing latitude", `{"longitude": 10}`},
		{"latitude out of range", `{"latitude": 95, "longitude": 10}`},
		{"longitude out of range", `{"latitude": 10, "longitude": 300}`},
		{"bad date", `{"latitude": 10, "longitude": 10, "date": "15/01/2024"}`},
		{"malformed body", `{`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, payload := postJSON(t, app, "/api/bloom-data", tc.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			if payload["success"] != false {
				t.Fatalf("success = %v, want false", payload["success"])
			}
			if payload["error"] == "" {
				t.Fatal("error message missing")
			}
		})
	}
}

func TestBloomPredictionEndpoint(t *testing.T) {
	app := newTestApp()

	resp, payload := postJSON(t, app, "/api/bloom-prediction",
		`{"latitude": 40, "longitude": -3}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if payload["success"] != true {
		t.Fatalf("success = %v, want true", payload["success"])
	}
	if _, ok := payload["predicted_bloom_date"].(string); !ok {
		t.Fatalf("predicted_bloom_date missing: %v", payload)
	}
	if prob := payload["probability"].(float64); prob > 0.95 {
		t.Fatalf("probability = %v, want <= 0.95", prob)
	}
}

func TestGlobalBloomMapEndpoint(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/global-bloom-map", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	payload := decodeBody(t, resp)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	data, ok := payload["data"].([]interface{})
	if !ok {
		t.Fatalf("data missing: %v", payload)
	}
	if len(data) != 6 {
		t.Fatalf("regions = %d, want exactly 6", len(data))
	}

	first := data[0].(map[string]interface{})
	if first["name"] != "Amazon" {
		t.Fatalf("first region = %v, want Amazon (fixed order)", first["name"])
	}
	for _, entry := range data {
		region := entry.(map[string]interface{})
		if region["status"] == "" {
			t.Fatalf("region %v has empty status", region["name"])
		}
	}
}

func TestTimeSeriesEndpoint(t *testing.T) {
	app := newTestApp()

	resp, payload := postJSON(t, app, "/api/time-series",
		`{"latitude": 10, "longitude": 20, "start_date": "2024-01-01", "end_date": "2024-01-29"}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	dates := payload["dates"].([]interface{})
	if len(dates) != 5 {
		t.Fatalf("dates = %v, want 5 weekly steps", dates)
	}
	if len(payload["ndvi_values"].([]interface{})) != 5 {
		t.Fatalf("ndvi_values length mismatch: %v", payload["ndvi_values"])
	}
	if _, ok := payload["bloom_events"].([]interface{}); !ok {
		t.Fatalf("bloom_events missing or null: %v", payload["bloom_events"])
	}
}

func TestTimeSeriesEndpointBadRange(t *testing.T) {
	app := newTestApp()

	resp, payload := postJSON(t, app, "/api/time-series",
		`{"latitude": 10, "longitude": 20, "start_date": "2024-02-01", "end_date": "2024-01-01"}`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if payload["success"] != false {
		t.Fatalf("success = %v, want false", payload["success"])
	}
}

func TestMultiYearComparisonEndpoint(t *testing.T) {
	app := newTestApp()

	resp, payload := postJSON(t, app, "/api/multi-year-comparison",
		`{"latitude": 40, "longitude": -100, "years": [2022, 2023, 2024]}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	years := payload["years_data"].([]interface{})
	if len(years) != 3 {
		t.Fatalf("years_data = %d entries, want 3", len(years))
	}
	if payload["trend"] != "increasing" && payload["trend"] != "decreasing" {
		t.Fatalf("trend = %v", payload["trend"])
	}
	if _, ok := payload["interpretation"].(string); !ok {
		t.Fatalf("interpretation missing: %v", payload)
	}
}

func TestConservationAlertsEndpoint(t *testing.T) {
	app := newTestApp()

	resp, payload := postJSON(t, app, "/api/conservation-alerts",
		`{"latitude": -3.4653, "longitude": -62.2159}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if _, ok := payload["alerts"].([]interface{}); !ok {
		t.Fatalf("alerts missing or null: %v", payload["alerts"])
	}
	if _, ok := payload["priority_score"].(float64); !ok {
		t.Fatalf("priority_score missing: %v", payload)
	}
	level := payload["priority_level"].(string)
	if level != "Alta" && level != "Media" && level != "Baja" {
		t.Fatalf("priority_level = %q", level)
	}
}
