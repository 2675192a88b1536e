package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"dog-breeds-api/internal/domain/temperaments"
)

type TemperamentRepo struct {
	mu     sync.RWMutex
	byID   map[int64]temperaments.Temperament
	byName map[string]int64
	nextID int64
}

func NewTemperamentRepo() *TemperamentRepo {
	return &TemperamentRepo{
		byID:   make(map[int64]temperaments.Temperament),
		byName: make(map[string]int64),
		nextID: 1,
	}
}

func (r *TemperamentRepo) List(ctx context.Context) ([]temperaments.Temperament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]temperaments.Temperament, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *TemperamentRepo) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.byID)), nil
}

func (r *TemperamentRepo) InsertIgnoringDuplicates(ctx context.Context, names []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, exists := r.byName[name]; exists {
			continue
		}
		id := r.nextID
		r.nextID++
		r.byID[id] = temperaments.Temperament{ID: id, Name: name}
		r.byName[name] = id
	}
	return nil
}

// lookup resuelve ids existentes; los desconocidos se ignoran.
func (r *TemperamentRepo) lookup(ids []int64) []temperaments.Temperament {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]temperaments.Temperament, 0, len(ids))
	seen := map[int64]struct{}{}
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if t, ok := r.byID[id]; ok {
			out = append(out, t)
		}
	}
	return out
}
