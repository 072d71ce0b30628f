package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

const powerPayload = `{
	"properties": {
		"parameter": {
			"T2M": {"20240115": 18.5},
			"PRECTOTCORR": {"20240115": 4.2}
		}
	}
}`

// newPowerServer serves a fixed payload and captures the request query.
func newPowerServer(t *testing.T, status int, body string) (*httptest.Server, *url.Values) {
	t.Helper()

	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &query
}

func TestPowerFetch(t *testing.T) {
	srv, query := newPowerServer(t, http.StatusOK, powerPayload)
	provider := NewPowerProvider(srv.Client(), "secret", srv.URL)

	reading, err := provider.Fetch(context.Background(), 10.5, -60.25, "20240115")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reading.TemperatureC != 18.5 || reading.PrecipitationMM != 4.2 {
		t.Fatalf("reading = %+v, want (18.5, 4.2)", reading)
	}

	wantParams := map[string]string{
		"parameters": "T2M,PRECTOTCORR,RH2M",
		"community":  "AG",
		"start":      "20240115",
		"end":        "20240115",
		"format":     "JSON",
		"api_key":    "secret",
	}
	for key, want := range wantParams {
		if got := query.Get(key); got != want {
			t.Fatalf("query %s = %q, want %q", key, got, want)
		}
	}
}

func TestPowerFetchWithoutAPIKey(t *testing.T) {
	srv, query := newPowerServer(t, http.StatusOK, powerPayload)
	provider := NewPowerProvider(srv.Client(), "", srv.URL)

	if _, err := provider.Fetch(context.Background(), 0, 0, "20240115"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, present := (*query)["api_key"]; present {
		t.Fatalf("api_key sent despite empty key: %v", *query)
	}
}

func TestPowerFetchBadStatus(t *testing.T) {
	srv, _ := newPowerServer(t, http.StatusServiceUnavailable, "")
	provider := NewPowerProvider(srv.Client(), "", srv.URL)

	if _, err := provider.Fetch(context.Background(), 0, 0, "20240115"); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestPowerFetchDecodeError(t *testing.T) {
	srv, _ := newPowerServer(t, http.StatusOK, "{not json")
	provider := NewPowerProvider(srv.Client(), "", srv.URL)

	if _, err := provider.Fetch(context.Background(), 0, 0, "20240115"); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestPowerFetchMissingParameters(t *testing.T) {
	srv, _ := newPowerServer(t, http.StatusOK, `{"properties": {"parameter": {}}}`)
	provider := NewPowerProvider(srv.Client(), "", srv.URL)

	reading, err := provider.Fetch(context.Background(), 0, 0, "20240115")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Absent parameters fall back to moderate defaults.
	if reading.TemperatureC != 20 || reading.PrecipitationMM != 0 {
		t.Fatalf("reading = %+v, want defaults (20, 0)", reading)
	}
}
