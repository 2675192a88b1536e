package breeds

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Source indica de dónde viene una raza.
type Source int

const (
	SourceUnknown Source = iota
	SourceExternal
	SourceLocal
)

func (s Source) String() string {
	switch s {
	case SourceExternal:
		return "api"
	case SourceLocal:
		return "db"
	default:
		return "unknown"
	}
}

// BreedID es un id etiquetado: numérico (API externa) o UUID (base local).
// Se parsea una sola vez en el borde y se decide por Source, no por largo del string.
type BreedID struct {
	source   Source
	external int64
	local    uuid.UUID
}

func ExternalID(n int64) BreedID {
	return BreedID{source: SourceExternal, external: n}
}

func LocalID(id uuid.UUID) BreedID {
	return BreedID{source: SourceLocal, local: id}
}

// ParseID acepta un UUID (local) o un número entero positivo (externo).
func ParseID(raw string) (BreedID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return BreedID{}, ErrInvalidID
	}

	if u, err := uuid.Parse(raw); err == nil {
		return LocalID(u), nil
	}

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n <= 0 {
			return BreedID{}, ErrInvalidID
		}
		return ExternalID(n), nil
	}

	// "1.0" o "1e0" también nombran la raza 1.
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f <= 0 || f != math.Trunc(f) || f >= math.MaxInt64 {
		return BreedID{}, ErrInvalidID
	}
	return ExternalID(int64(f)), nil
}

func (id BreedID) Source() Source { return id.source }

func (id BreedID) IsLocal() bool { return id.source == SourceLocal }

func (id BreedID) IsExternal() bool { return id.source == SourceExternal }

// External devuelve el id numérico; ok=false si no es externo.
func (id BreedID) External() (int64, bool) {
	return id.external, id.source == SourceExternal
}

// Local devuelve el UUID; ok=false si no es local.
func (id BreedID) Local() (uuid.UUID, bool) {
	return id.local, id.source == SourceLocal
}

func (id BreedID) String() string {
	switch id.source {
	case SourceExternal:
		return strconv.FormatInt(id.external, 10)
	case SourceLocal:
		return id.local.String()
	default:
		return ""
	}
}

// MarshalJSON: número para externos, string para locales.
func (id BreedID) MarshalJSON() ([]byte, error) {
	switch id.source {
	case SourceExternal:
		return json.Marshal(id.external)
	case SourceLocal:
		return json.Marshal(id.local.String())
	default:
		return []byte("null"), nil
	}
}
