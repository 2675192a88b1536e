package breeds

import (
	"context"
	"strings"

	"dog-breeds-api/internal/platform/logger"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidID    = errors.New("invalid dog id")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo     Repository
	external ExternalSource
	log      logger.Logger
	newID    func() uuid.UUID
}

func NewService(repo Repository, external ExternalSource, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		repo:     repo,
		external: external,
		log:      log.With(map[string]any{"component": "breeds"}),
		newID:    uuid.New,
	}
}

// ListAll junta razas externas + locales. Ambas fuentes se consultan en paralelo;
// si una falla se cancela la otra y no hay resultado parcial.
func (s *Service) ListAll(ctx context.Context) ([]Breed, error) {
	var apiBreeds, dbBreeds []Breed

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := s.external.ListBreeds(gctx)
		if err != nil {
			return err
		}
		apiBreeds = out
		return nil
	})
	g.Go(func() error {
		out, err := s.repo.List(gctx)
		if err != nil {
			return err
		}
		dbBreeds = out
		return nil
	})

	if err := g.Wait(); err != nil {
		s.log.Error("list all breeds failed", map[string]any{"error": err})
		return nil, err
	}

	// Externas primero, después locales. Sin dedup ni orden.
	all := make([]Breed, 0, len(apiBreeds)+len(dbBreeds))
	all = append(all, apiBreeds...)
	all = append(all, dbBreeds...)
	return all, nil
}

// Search filtra ListAll por nombre (substring, case-insensitive). Query vacía => todo.
func (s *Service) Search(ctx context.Context, name string) ([]Breed, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByName(all, name), nil
}

func FilterByName(items []Breed, name string) []Breed {
	q := strings.ToLower(name)
	if q == "" {
		return items
	}

	out := make([]Breed, 0)
	for _, b := range items {
		if strings.Contains(strings.ToLower(b.Name), q) {
			out = append(out, b)
		}
	}
	return out
}

// Get resuelve según el tipo de id: local va directo al store, externo busca en el listado.
func (s *Service) Get(ctx context.Context, id BreedID) (Breed, error) {
	switch id.Source() {
	case SourceLocal:
		local, _ := id.Local()
		return s.repo.GetByID(ctx, local)

	case SourceExternal:
		all, err := s.ListAll(ctx)
		if err != nil {
			return Breed{}, err
		}
		n, _ := id.External()
		for _, b := range all {
			if ext, ok := b.ID.External(); ok && ext == n {
				return b, nil
			}
		}
		return Breed{}, ErrNotFound

	default:
		return Breed{}, ErrInvalidID
	}
}

type CreateInput struct {
	Name           string
	Height         Range
	Weight         Range
	YearsLife      string
	Image          string
	TemperamentIDs []int64
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Breed, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Breed{}, ErrInvalidInput
	}
	if !in.Height.Ordered() || !in.Weight.Ordered() {
		return Breed{}, ErrInvalidInput
	}

	id := s.newID()
	b := Breed{
		ID:        LocalID(id),
		Name:      name,
		Height:    in.Height,
		Weight:    in.Weight,
		YearsLife: strings.TrimSpace(in.YearsLife),
		Image:     strings.TrimSpace(in.Image),
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return Breed{}, err
	}

	if len(in.TemperamentIDs) > 0 {
		if err := s.repo.SetTemperaments(ctx, id, in.TemperamentIDs); err != nil {
			return Breed{}, err
		}
	}

	return s.repo.GetByID(ctx, id)
}

type UpdateInput struct {
	// Punteros: nil = no tocar.
	Name      *string
	HeightMin *Measure
	HeightMax *Measure
	WeightMin *Measure
	WeightMax *Measure
	YearsLife *string
	Image     *string

	// Vacío = no tocar; con valores reemplaza el set completo.
	TemperamentIDs []int64
}

func (s *Service) Update(ctx context.Context, id BreedID, in UpdateInput) (Breed, error) {
	local, ok := id.Local()
	if !ok {
		return Breed{}, ErrNotFound
	}

	current, err := s.repo.GetByID(ctx, local)
	if err != nil {
		return Breed{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Breed{}, ErrInvalidInput
		}
		current.Name = name
	}
	if in.HeightMin != nil {
		current.Height.Min = *in.HeightMin
	}
	if in.HeightMax != nil {
		current.Height.Max = *in.HeightMax
	}
	if in.WeightMin != nil {
		current.Weight.Min = *in.WeightMin
	}
	if in.WeightMax != nil {
		current.Weight.Max = *in.WeightMax
	}
	if in.YearsLife != nil {
		current.YearsLife = strings.TrimSpace(*in.YearsLife)
	}
	if in.Image != nil {
		current.Image = strings.TrimSpace(*in.Image)
	}

	if !current.Height.Ordered() || !current.Weight.Ordered() {
		return Breed{}, ErrInvalidInput
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return Breed{}, err
	}

	if len(in.TemperamentIDs) > 0 {
		if err := s.repo.SetTemperaments(ctx, local, in.TemperamentIDs); err != nil {
			return Breed{}, err
		}
	}

	return s.repo.GetByID(ctx, local)
}

// Delete solo aplica a razas locales; un id externo nunca existe en el store.
func (s *Service) Delete(ctx context.Context, id BreedID) error {
	local, ok := id.Local()
	if !ok {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, local)
}
