package bloom

import (
	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/climate"
	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/common"
)

// Alert severities.
const (
	AlertCritical = "critical"
	AlertWarning  = "warning"
	AlertInfo     = "info"
)

// Alert is one conservation finding for a location.
type Alert struct {
	Level   string `json:"level"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ConservationReport bundles alerts, recommended actions, and a priority
// rating for a location.
type ConservationReport struct {
	Alerts          []Alert  `json:"alerts"`
	Recommendations []string `json:"recommendations"`
	PriorityScore   float64  `json:"priority_score"`
	PriorityLevel   string   `json:"priority_level"`
}

// BuildConservationReport evaluates the fixed alert threshold rules against a
// sample and its bloom assessment. Slices are always non-nil so the JSON
// encoding stays [] rather than null.
func BuildConservationReport(s climate.Sample, a Assessment) ConservationReport {
	alerts := []Alert{}
	recommendations := []string{}

	if s.NDVI < 0.3 {
		alerts = append(alerts, Alert{
			Level:   AlertCritical,
			Type:    "Degradación",
			Message: "⚠️ Baja vegetación detectada. Posible degradación del ecosistema.",
		})
		recommendations = append(recommendations,
			"Investigar causas de pérdida de vegetación",
			"Implementar medidas de restauración urgentes",
		)
	}

	if s.NDVI > 0.8 && s.TemperatureC < 15 {
		alerts = append(alerts, Alert{
			Level:   AlertWarning,
			Type:    "Especie Invasora",
			Message: "🚨 Patrón anómalo detectado. Posible especie invasora.",
		})
		recommendations = append(recommendations,
			"Realizar inspección de campo",
			"Verificar especies no nativas",
		)
	}

	if a.Level > 70 {
		alerts = append(alerts, Alert{
			Level:   AlertInfo,
			Type:    "Oportunidad",
			Message: "🌸 Floración máxima. Momento óptimo para polinización.",
		})
		recommendations = append(recommendations,
			"Ubicar colmenas en la zona",
			"Planificar actividades de turismo ecológico",
		)
	}

	score := common.Round(s.NDVI*100, 1)

	level := "Baja"
	switch {
	case score > 60:
		level = "Alta"
	case score > 30:
		level = "Media"
	}

	return ConservationReport{
		Alerts:          alerts,
		Recommendations: recommendations,
		PriorityScore:   score,
		PriorityLevel:   level,
	}
}
