package breeds

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	// Defaults que aplica la fuente externa cuando faltan datos.
	NotFoundText     = "Not found"
	PlaceholderImage = "https://img.freepik.com/premium-photo/cute-confused-little-dog-with-question-marks_488220-4972.jpg?w=2000"
)

// Measure es un número opcional. Valid=false significa "sin dato" (se serializa como null).
type Measure struct {
	Value float64
	Valid bool
}

func Some(v float64) Measure { return Measure{Value: v, Valid: true} }

func None() Measure { return Measure{} }

func (m Measure) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON acepta número, string numérica o null.
func (m *Measure) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*m = None()
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*m = ParseMeasure(s)
		if strings.TrimSpace(s) != "" && !m.Valid {
			return ErrInvalidInput
		}
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*m = Some(f)
	return nil
}

// ParseMeasure parsea un número finito con espacios alrededor; cualquier otra cosa es None.
func ParseMeasure(s string) Measure {
	s = strings.TrimSpace(s)
	if s == "" {
		return None()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return None()
	}
	return Some(f)
}

// Range es un intervalo min/max con extremos opcionales.
type Range struct {
	Min Measure
	Max Measure
}

// Ordered es falso solo si ambos extremos existen y min > max.
func (r Range) Ordered() bool {
	if !r.Min.Valid || !r.Max.Valid {
		return true
	}
	return r.Min.Value <= r.Max.Value
}

// ParseRange parsea "min - max" partiendo en el guion.
// Extremos faltantes o inválidos quedan como None (nunca 0).
func ParseRange(s string) Range {
	parts := strings.Split(s, "-")
	r := Range{Min: ParseMeasure(parts[0])}
	if len(parts) > 1 {
		r.Max = ParseMeasure(parts[1])
	}
	return r
}

// TemperamentTag es la vista de un temperamento asociado a una raza local.
type TemperamentTag struct {
	ID   int64
	Name string
}

// Breed es una raza, venga de la API externa o de la base local.
type Breed struct {
	ID   BreedID
	Name string

	Height Range
	Weight Range

	YearsLife string
	Image     string

	// Temperament es el string para mostrar ("Loyal, Playful").
	Temperament string
	// Temperaments solo se completa para razas locales.
	Temperaments []TemperamentTag
}

// JoinTemperaments arma el string de display a partir de los tags.
func JoinTemperaments(tags []TemperamentTag) string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}
