package temperaments

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	mu     sync.Mutex
	byName map[string]int64
	nextID int64
}

func newTestRepo() *testRepo {
	return &testRepo{byName: map[string]int64{}}
}

func (r *testRepo) List(ctx context.Context) ([]Temperament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Temperament, 0, len(r.byName))
	for name, id := range r.byName {
		out = append(out, Temperament{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *testRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byName)), nil
}

func (r *testRepo) InsertIgnoringDuplicates(ctx context.Context, names []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range names {
		if _, ok := r.byName[n]; ok {
			continue
		}
		r.nextID++
		r.byName[n] = r.nextID
	}
	return nil
}

type testSource struct {
	raw   []string
	err   error
	delay time.Duration
	calls atomic.Int64
}

func (s *testSource) ListTemperamentNames(ctx context.Context) ([]string, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.raw, nil
}

func TestSplitNames(t *testing.T) {
	got := SplitNames([]string{
		"Loyal, Playful",
		"",
		" Playful ,Alert,, ",
		"Loyal",
	})
	assert.Equal(t, []string{"Loyal", "Playful", "Alert"}, got)
	assert.Empty(t, SplitNames(nil))
}

func TestService_Seed_PopulatesOnce(t *testing.T) {
	repo := newTestRepo()
	src := &testSource{raw: []string{"Loyal, Playful", "Alert, Loyal"}}

	var hooked int
	svc := NewService(repo, src, nil, WithSeedHook(func(n int) { hooked = n }))
	ctx := context.Background()

	first, err := svc.Seed(ctx)
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.Equal(t, "Alert", first[0].Name)
	assert.True(t, svc.Populated())
	assert.Equal(t, 3, hooked)

	second, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), src.calls.Load())
}

func TestService_Seed_SkipsFetchWhenRowsExist(t *testing.T) {
	repo := newTestRepo()
	require.NoError(t, repo.InsertIgnoringDuplicates(context.Background(), []string{"Calm"}))

	src := &testSource{raw: []string{"Loyal"}}
	svc := NewService(repo, src, nil)

	got, err := svc.Seed(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Calm", got[0].Name)
	assert.Equal(t, int64(0), src.calls.Load())
	assert.True(t, svc.Populated())
}

func TestService_Seed_SourceFailure(t *testing.T) {
	boom := errors.New("boom")
	src := &testSource{err: boom}
	svc := NewService(newTestRepo(), src, nil)

	_, err := svc.Seed(context.Background())
	require.ErrorIs(t, err, boom)
	assert.False(t, svc.Populated())

	// Un fallo no deja la cache marcada: el próximo intento vuelve a consultar.
	src.err = nil
	src.raw = []string{"Loyal"}
	got, err := svc.Seed(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(2), src.calls.Load())
}

func TestService_Seed_EmptySourceStaysUnpopulated(t *testing.T) {
	src := &testSource{raw: []string{"", ""}}
	svc := NewService(newTestRepo(), src, nil)

	got, err := svc.Seed(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.False(t, svc.Populated())
}

func TestService_Seed_ConcurrentCallsShareFetch(t *testing.T) {
	src := &testSource{raw: []string{"Loyal, Playful"}, delay: 50 * time.Millisecond}
	svc := NewService(newTestRepo(), src, nil)

	var wg sync.WaitGroup
	results := make([][]Temperament, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Seed(context.Background())
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Len(t, results[i], 2)
	}
	assert.Equal(t, int64(1), src.calls.Load())
}

// gatedSource bloquea hasta release o hasta que se cancele el ctx que recibe.
type gatedSource struct {
	raw       []string
	started   chan struct{}
	release   chan struct{}
	once      sync.Once
	calls     atomic.Int64
	sawCancel atomic.Bool
}

func newGatedSource(raw ...string) *gatedSource {
	return &gatedSource{raw: raw, started: make(chan struct{}), release: make(chan struct{})}
}

func (s *gatedSource) ListTemperamentNames(ctx context.Context) ([]string, error) {
	s.calls.Add(1)
	s.once.Do(func() { close(s.started) })

	select {
	case <-s.release:
		return s.raw, nil
	case <-ctx.Done():
		s.sawCancel.Store(true)
		return nil, ctx.Err()
	}
}

func TestService_Seed_FirstCallerCancelDoesNotFailOthers(t *testing.T) {
	src := newGatedSource("Loyal, Playful")
	svc := NewService(newTestRepo(), src, nil)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.Seed(firstCtx)
		firstErr <- err
	}()
	<-src.started

	type result struct {
		items []Temperament
		err   error
	}
	second := make(chan result, 1)
	go func() {
		items, err := svc.Seed(context.Background())
		second <- result{items, err}
	}()

	cancelFirst()
	select {
	case err := <-firstErr:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled caller kept waiting")
	}

	close(src.release)
	select {
	case res := <-second:
		require.NoError(t, res.err)
		assert.Len(t, res.items, 2)
	case <-time.After(2 * time.Second):
		t.Fatal("second caller never got the seed result")
	}

	assert.False(t, src.sawCancel.Load(), "shared fetch must not see the first caller's cancel")
	assert.Equal(t, int64(1), src.calls.Load())
	assert.True(t, svc.Populated())
}
