package memory

import (
	"context"
	"sort"
	"sync"

	"dog-breeds-api/internal/domain/breeds"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type breedRow struct {
	breed breeds.Breed
	seq   int64
	tags  map[int64]struct{}
}

type BreedRepo struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*breedRow
	seq   int64
	temps *TemperamentRepo
}

// NewBreedRepo necesita el repo de temperamentos para resolver la relación many-to-many.
func NewBreedRepo(temps *TemperamentRepo) *BreedRepo {
	return &BreedRepo{
		byID:  make(map[uuid.UUID]*breedRow),
		temps: temps,
	}
}

func (r *BreedRepo) List(ctx context.Context) ([]breeds.Breed, error) {
	r.mu.RLock()
	rows := make([]*breedRow, 0, len(r.byID))
	for _, row := range r.byID {
		rows = append(rows, row)
	}
	r.mu.RUnlock()

	// Orden de inserción (solo para consistencia en dev)
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	out := make([]breeds.Breed, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.hydrate(row))
	}
	return out, nil
}

func (r *BreedRepo) GetByID(ctx context.Context, id uuid.UUID) (breeds.Breed, error) {
	r.mu.RLock()
	row, ok := r.byID[id]
	r.mu.RUnlock()

	if !ok {
		return breeds.Breed{}, errors.WithStack(breeds.ErrNotFound)
	}
	return r.hydrate(row), nil
}

func (r *BreedRepo) Create(ctx context.Context, b breeds.Breed) error {
	id, ok := b.ID.Local()
	if !ok {
		return errors.New("breed local id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; exists {
		return errors.New("breed already exists")
	}
	r.seq++
	b.Temperaments = nil
	b.Temperament = ""
	r.byID[id] = &breedRow{breed: b, seq: r.seq, tags: map[int64]struct{}{}}
	return nil
}

func (r *BreedRepo) Update(ctx context.Context, b breeds.Breed) error {
	id, ok := b.ID.Local()
	if !ok {
		return errors.New("breed local id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	row, exists := r.byID[id]
	if !exists {
		return errors.WithStack(breeds.ErrNotFound)
	}
	b.Temperaments = nil
	b.Temperament = ""
	row.breed = b
	return nil
}

func (r *BreedRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return errors.WithStack(breeds.ErrNotFound)
	}
	delete(r.byID, id)
	return nil
}

func (r *BreedRepo) SetTemperaments(ctx context.Context, id uuid.UUID, temperamentIDs []int64) error {
	found := r.temps.lookup(temperamentIDs)

	r.mu.Lock()
	defer r.mu.Unlock()

	row, exists := r.byID[id]
	if !exists {
		return errors.WithStack(breeds.ErrNotFound)
	}

	tags := make(map[int64]struct{}, len(found))
	for _, t := range found {
		tags[t.ID] = struct{}{}
	}
	row.tags = tags
	return nil
}

func (r *BreedRepo) hydrate(row *breedRow) breeds.Breed {
	r.mu.RLock()
	b := row.breed
	ids := make([]int64, 0, len(row.tags))
	for id := range row.tags {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	found := r.temps.lookup(ids)
	sort.Slice(found, func(i, j int) bool { return found[i].Name < found[j].Name })

	tags := make([]breeds.TemperamentTag, 0, len(found))
	for _, t := range found {
		tags = append(tags, breeds.TemperamentTag{ID: t.ID, Name: t.Name})
	}
	b.Temperaments = tags
	b.Temperament = breeds.JoinTemperaments(tags)
	return b
}
