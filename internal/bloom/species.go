package bloom

import (
	"math"

	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/climate"
)

// EcosystemType is the latitude-band climate classification.
type EcosystemType string

const (
	EcosystemTropical  EcosystemType = "Tropical"
	EcosystemTemperate EcosystemType = "Templado"
	EcosystemBoreal    EcosystemType = "Boreal/Polar"
)

// Inference is the heuristic ecological interpretation of one sample.
type Inference struct {
	EcosystemType         EcosystemType `json:"ecosystem_type"`
	SpeciesHints          []string      `json:"species_hints"`
	EcologicalNotes       []string      `json:"ecological_notes"`
	BiodiversityPotential string        `json:"biodiversity_potential"`
	Confidence            string        `json:"confidence"`
	ConservationPriority  string        `json:"conservation_priority"`
}

// speciesRule is one predicate -> effect entry of the classifier cascade.
// Rules are evaluated in fixed order against the immutable input; every rule
// whose predicate holds appends its hints and notes, so several rules can
// fire for the same sample.
type speciesRule struct {
	applies func(s climate.Sample, zone EcosystemType) bool
	hints   []string
	notes   []string
}

func agriculturalPattern(s climate.Sample) bool {
	return s.NDVI > 0.4 && s.NDVI < 0.7 && s.EVI > 0.5 && s.EVI < 0.8
}

// speciesRules is the full cascade. Order matters: hints and notes are
// accumulated in this sequence.
var speciesRules = []speciesRule{
	{
		applies: func(s climate.Sample, zone EcosystemType) bool {
			return zone == EcosystemTropical && s.NDVI > 0.7
		},
		hints: []string{"Selva tropical densa"},
		notes: []string{"Alta biodiversidad esperada"},
	},
	{
		applies: func(s climate.Sample, zone EcosystemType) bool {
			return zone == EcosystemTropical && s.TemperatureC > 25 && s.PrecipitationMM > 10
		},
		hints: []string{"Flores tropicales: Orquídeas, Heliconias, Jengibre"},
		notes: []string{"Período óptimo para polinizadores"},
	},
	{
		applies: func(s climate.Sample, zone EcosystemType) bool {
			return zone == EcosystemTemperate && s.TemperatureC > 15 && s.TemperatureC < 25 && s.NDVI > 0.5
		},
		hints: []string{
			"Árboles frutales en floración",
			"Posibles especies: Cerezos, Manzanos, Duraznos",
		},
		notes: []string{"Momento crítico para control de plagas"},
	},
	{
		applies: func(s climate.Sample, zone EcosystemType) bool {
			return zone == EcosystemTemperate && s.NDVI > 0.6 && s.TemperatureC > 10 && s.TemperatureC < 20
		},
		hints: []string{"Flores silvestres de primavera"},
		notes: []string{"Importante para polinizadores nativos"},
	},
	{
		applies: func(s climate.Sample, zone EcosystemType) bool {
			return zone == EcosystemBoreal && s.NDVI > 0.3
		},
		hints: []string{"Tundra floreciente o bosque boreal"},
		notes: []string{"Ventana corta de floración - sensible a cambio climático"},
	},
	{
		applies: func(s climate.Sample, zone EcosystemType) bool {
			return agriculturalPattern(s)
		},
		hints: []string{"🌾 Patrón agrícola detectado"},
	},
	{
		applies: func(s climate.Sample, zone EcosystemType) bool {
			return agriculturalPattern(s) && s.TemperatureC > 20
		},
		hints: []string{"Cultivos posibles: Algodón, Girasoles, Canola"},
		notes: []string{"Fase pre-floración crítica para aplicación de fertilizantes"},
	},
	{
		applies: func(s climate.Sample, zone EcosystemType) bool {
			return agriculturalPattern(s) && s.TemperatureC <= 20
		},
		hints: []string{"Cultivos de clima frío: Trigo, Cebada"},
	},
	{
		applies: func(s climate.Sample, zone EcosystemType) bool {
			return s.NDVI > 0.75 && s.TemperatureC < 10
		},
		hints: []string{"⚠️ ALERTA: Posible especie invasora"},
		notes: []string{
			"Floración anómala fuera de temporada normal",
			"Requiere inspección de campo urgente",
		},
	},
	{
		applies: func(s climate.Sample, zone EcosystemType) bool {
			return s.NDVI < 0.25
		},
		hints: []string{"Vegetación escasa o degradada"},
		notes: []string{
			"⚠️ Posible desertificación o sobreexplotación",
			"Área prioritaria para restauración",
		},
	},
}

// Classify infers ecosystem, candidate species, and ecological notes for one
// sample at the given latitude. Pure function; the rule cascade preserves the
// documented evaluation order and multi-fire behavior.
func Classify(s climate.Sample, lat float64) Inference {
	zone := ecosystemFor(lat)

	var hints, notes []string
	for _, r := range speciesRules {
		if r.applies(s, zone) {
			hints = append(hints, r.hints...)
			notes = append(notes, r.notes...)
		}
	}

	// Confidence counts the hints actually fired, before defaults apply.
	confidence := "Baja"
	switch {
	case len(hints) > 2:
		confidence = "Alta"
	case len(hints) > 0:
		confidence = "Media"
	}

	if len(hints) == 0 {
		hints = []string{"Vegetación general"}
	}
	if len(notes) == 0 {
		notes = []string{"Condiciones normales"}
	}

	priority := "Media"
	if s.NDVI > 0.6 || s.NDVI < 0.3 {
		priority = "Alta"
	}

	return Inference{
		EcosystemType:         zone,
		SpeciesHints:          hints,
		EcologicalNotes:       notes,
		BiodiversityPotential: biodiversityPotential(s),
		Confidence:            confidence,
		ConservationPriority:  priority,
	}
}

func ecosystemFor(lat float64) EcosystemType {
	abs := math.Abs(lat)
	switch {
	case abs <= 23.5:
		return EcosystemTropical
	case abs <= 66.5:
		return EcosystemTemperate
	default:
		return EcosystemBoreal
	}
}

// biodiversityPotential scores habitat richness from vegetation, temperature,
// and precipitation, returning a labeled tier with a short description.
func biodiversityPotential(s climate.Sample) string {
	vegScore := (s.NDVI + s.EVI) / 2 * 50

	tempScore := 15.0
	if s.TemperatureC > 15 && s.TemperatureC < 28 {
		tempScore = 30
	}

	precipScore := 10.0
	if s.PrecipitationMM > 5 {
		precipScore = 20
	}

	total := vegScore + tempScore + precipScore
	switch {
	case total > 80:
		return "Muy Alto - Ecosistema rico"
	case total > 60:
		return "Alto - Biodiversidad significativa"
	case total > 40:
		return "Moderado - Biodiversidad estándar"
	default:
		return "Bajo - Ecosistema limitado"
	}
}
