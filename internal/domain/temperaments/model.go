package temperaments

import (
	"context"
	"strings"
)

// Temperament es un rasgo (tag) asociable a muchas razas. Name es único.
type Temperament struct {
	ID   int64
	Name string
}

type Repository interface {
	// List devuelve todos los temperamentos ordenados por nombre ascendente.
	List(ctx context.Context) ([]Temperament, error)
	Count(ctx context.Context) (int64, error)
	// InsertIgnoringDuplicates inserta en bloque; nombres ya existentes se saltean sin error.
	InsertIgnoringDuplicates(ctx context.Context, names []string) error
}

// Source entrega el campo temperamento crudo de cada raza externa ("Loyal, Playful"),
// sin defaults: entradas sin temperamento vienen vacías.
type Source interface {
	ListTemperamentNames(ctx context.Context) ([]string, error)
}

// SplitNames parte, limpia y deduplica una lista de strings separados por coma.
// Mantiene el orden de primera aparición.
func SplitNames(raw []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0)

	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			name := strings.TrimSpace(part)
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}
