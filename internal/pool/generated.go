package pool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/phrazzld/scry-match/internal/domain"
	"github.com/phrazzld/scry-match/internal/generation"
)

// DefaultGeneratedWorldLimit caps how many generated worlds a source keeps
// when no limit is configured.
const DefaultGeneratedWorldLimit = 100

// ErrTooManyWorlds is returned when generating a new world name would exceed
// the source's limit. Replacing an existing generated world is always allowed.
var ErrTooManyWorlds = errors.New("too many generated worlds")

// GeneratedSource turns generator output into worlds and keeps them in
// memory by name.
type GeneratedSource struct {
	gen    generation.Generator
	limit  int
	logger *slog.Logger

	mu     sync.RWMutex
	worlds map[string]*domain.World
}

// NewGeneratedSource creates a source backed by gen that keeps at most limit
// worlds. A non-positive limit uses DefaultGeneratedWorldLimit.
func NewGeneratedSource(gen generation.Generator, limit int, logger *slog.Logger) *GeneratedSource {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if limit <= 0 {
		limit = DefaultGeneratedWorldLimit
	}
	return &GeneratedSource{
		gen:    gen,
		limit:  limit,
		logger: logger.With("component", "generated_source"),
		worlds: make(map[string]*domain.World),
	}
}

// Generate runs the generator and stores the result under req.Name,
// replacing any earlier world of that name. Sessions already playing the old
// world keep it.
func (s *GeneratedSource) Generate(ctx context.Context, req generation.Request) (*domain.World, error) {
	if err := ValidateName(req.Name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	full := s.fullFor(req.Name)
	s.mu.RUnlock()
	if full {
		return nil, fmt.Errorf("%w: limit is %d", ErrTooManyWorlds, s.limit)
	}

	res, err := s.gen.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate world %q: %w", req.Name, err)
	}

	w := &domain.World{
		Name:         req.Name,
		Mode:         req.Mode,
		ItemsPerGame: req.ItemsPerGame,
		Items:        res.Items,
		Distractors:  res.Distractors,
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.fullFor(w.Name) {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: limit is %d", ErrTooManyWorlds, s.limit)
	}
	_, replaced := s.worlds[w.Name]
	s.worlds[w.Name] = w
	s.mu.Unlock()

	s.logger.Info("world generated",
		"world", w.Name,
		"mode", w.Mode,
		"items", len(w.Items),
		"replaced", replaced)
	return w, nil
}

// fullFor reports whether storing name would exceed the limit. Callers hold mu.
func (s *GeneratedSource) fullFor(name string) bool {
	_, exists := s.worlds[name]
	return !exists && len(s.worlds) >= s.limit
}

// World implements Source.
func (s *GeneratedSource) World(_ context.Context, name string) (*domain.World, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.worlds[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrWorldNotFound, name)
	}
	return w, nil
}

// Names implements Source.
func (s *GeneratedSource) Names(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.worlds))
	for n := range s.worlds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// Forget removes a generated world.
func (s *GeneratedSource) Forget(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.worlds, name)
}
