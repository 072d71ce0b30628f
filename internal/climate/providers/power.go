package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/climate"
	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/metrics"
)

const defaultPowerURL = "https://power.larc.nasa.gov/api/temporal/daily/point"

// PowerProvider implements the climate.Provider interface for the NASA POWER
// daily point API. It performs a single attempt per Fetch; the timeout is
// carried by the shared HTTP client.
type PowerProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewPowerProvider(client *http.Client, apiKey, baseURL string) *PowerProvider {
	if baseURL == "" {
		baseURL = defaultPowerURL
	}
	return &PowerProvider{
		name:    "nasa-power",
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
	}
}

func (p *PowerProvider) Name() string {
	return p.name
}

func (p *PowerProvider) Fetch(ctx context.Context, lat, lon float64, date string) (climate.Reading, error) {
	values := url.Values{}
	values.Set("parameters", "T2M,PRECTOTCORR,RH2M")
	values.Set("community", "AG")
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lon))
	values.Set("start", date)
	values.Set("end", date)
	values.Set("format", "JSON")
	if p.apiKey != "" {
		values.Set("api_key", p.apiKey)
	}

	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return climate.Reading{}, err
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	metrics.PowerAPILatency.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PowerAPICallsTotal.WithLabelValues("transport_error").Inc()
		return climate.Reading{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.PowerAPICallsTotal.WithLabelValues("bad_status").Inc()
		return climate.Reading{}, fmt.Errorf("nasa power: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Properties struct {
			Parameter struct {
				T2M         map[string]float64 `json:"T2M"`
				PRECTOTCORR map[string]float64 `json:"PRECTOTCORR"`
			} `json:"parameter"`
		} `json:"properties"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		metrics.PowerAPICallsTotal.WithLabelValues("decode_error").Inc()
		return climate.Reading{}, err
	}

	metrics.PowerAPICallsTotal.WithLabelValues("ok").Inc()

	return climate.Reading{
		TemperatureC:    firstValue(payload.Properties.Parameter.T2M, 20),
		PrecipitationMM: firstValue(payload.Properties.Parameter.PRECTOTCORR, 0),
	}, nil
}

// firstValue returns the single daily value keyed by date, or def when the
// parameter is absent from the payload.
func firstValue(values map[string]float64, def float64) float64 {
	for _, v := range values {
		return v
	}
	return def
}
