package temperaments

import (
	"context"
	"sync/atomic"

	"dog-breeds-api/internal/platform/logger"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

// Service mantiene el vocabulario de temperamentos.
//
// La tabla funciona como cache de la API externa: se llena una sola vez y no se refresca.
// El flag populated se prende cuando la tabla tiene filas (ya sea porque las encontramos
// o porque las sembramos). No hay invalidación: para re-sembrar hay que vaciar la tabla
// y reiniciar el proceso.
type Service struct {
	repo   Repository
	source Source
	log    logger.Logger

	populated atomic.Bool
	group     singleflight.Group

	// onSeed se llama cada vez que se consulta la fuente externa (métricas).
	onSeed func(inserted int)
}

type Option func(*Service)

func WithSeedHook(fn func(inserted int)) Option {
	return func(s *Service) { s.onSeed = fn }
}

func NewService(repo Repository, source Source, log logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	s := &Service{
		repo:   repo,
		source: source,
		log:    log.With(map[string]any{"component": "temperaments"}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Populated indica si la cache ya está llena.
func (s *Service) Populated() bool {
	return s.populated.Load()
}

// Seed devuelve todos los temperamentos, sembrándolos desde la fuente externa si la tabla está vacía.
// Llamadas concurrentes comparten una sola ejecución. Esa ejecución no se cancela con el ctx
// de quien la inició; cada caller deja de esperar cuando se cancela su propio ctx.
func (s *Service) Seed(ctx context.Context) ([]Temperament, error) {
	if s.populated.Load() {
		return s.repo.List(ctx)
	}

	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan("seed", func() (any, error) {
		return s.seed(shared)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]Temperament), nil
	case <-ctx.Done():
		return nil, errors.WithStack(ctx.Err())
	}
}

func (s *Service) seed(ctx context.Context) ([]Temperament, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if n > 0 {
		s.populated.Store(true)
		return s.repo.List(ctx)
	}

	raw, err := s.source.ListTemperamentNames(ctx)
	if err != nil {
		s.log.Error("fetch temperaments from source failed", map[string]any{"error": err})
		return nil, err
	}

	names := SplitNames(raw)
	if err := s.repo.InsertIgnoringDuplicates(ctx, names); err != nil {
		return nil, errors.WithStack(err)
	}

	if s.onSeed != nil {
		s.onSeed(len(names))
	}
	s.log.Info("temperaments seeded", map[string]any{"count": len(names)})

	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(out) > 0 {
		s.populated.Store(true)
	}
	return out, nil
}
