package breeds

import (
	"context"

	"github.com/google/uuid"
)

// Repository es el store local de razas (con su relación many-to-many a temperamentos).
type Repository interface {
	List(ctx context.Context) ([]Breed, error)
	GetByID(ctx context.Context, id uuid.UUID) (Breed, error)
	Create(ctx context.Context, b Breed) error
	Update(ctx context.Context, b Breed) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SetTemperaments reemplaza el set asociado. Ids sin temperamento existente se ignoran.
	SetTemperaments(ctx context.Context, id uuid.UUID, temperamentIDs []int64) error
}

// ExternalSource es la API de terceros con el catálogo de razas.
type ExternalSource interface {
	ListBreeds(ctx context.Context) ([]Breed, error)
}
