package pool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/phrazzld/scry-match/internal/domain"
	"gopkg.in/yaml.v3"
)

const worldExt = ".yaml"

// worldFile is the on-disk shape of a world. Items stay raw until the mode is
// known.
type worldFile struct {
	Name         string                `yaml:"name"`
	Mode         domain.Mode           `yaml:"mode"`
	ItemsPerGame int                   `yaml:"items_per_game"`
	Items        []yaml.Node           `yaml:"items"`
	Distractors  []domain.OrderedToken `yaml:"distractors"`
}

// FileSource reads worlds from <dir>/<name>.yaml and caches them until
// invalidated.
type FileSource struct {
	dir    string
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string]*domain.World
}

// NewFileSource creates a source for the world files in dir.
func NewFileSource(dir string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &FileSource{
		dir:    dir,
		logger: logger.With("component", "file_source", "dir", dir),
		cache:  make(map[string]*domain.World),
	}
}

// Dir returns the directory the source reads from.
func (s *FileSource) Dir() string { return s.dir }

// World implements Source.
func (s *FileSource) World(_ context.Context, name string) (*domain.World, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	w, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return w, nil
	}

	w, err := s.load(name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[name] = w
	s.mu.Unlock()
	return w, nil
}

func (s *FileSource) load(name string) (*domain.World, error) {
	path := filepath.Join(s.dir, name+worldExt)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrWorldNotFound, name)
		}
		return nil, fmt.Errorf("read world %s: %w", path, err)
	}

	w, err := parseWorld(b, name, s.logger)
	if err != nil {
		return nil, fmt.Errorf("parse world %s: %w", path, err)
	}
	s.logger.Info("world loaded",
		"world", w.Name,
		"mode", w.Mode,
		"items", len(w.Items),
		"distractors", len(w.Distractors))
	return w, nil
}

// parseWorld decodes a world file. Items that fail validation, and items that
// do not decode into the world's item type, keep their position so the deck
// builder skips them in place and chunk boundaries keep the authored layout.
func parseWorld(b []byte, name string, logger *slog.Logger) (*domain.World, error) {
	var f worldFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if f.Name == "" {
		f.Name = name
	}

	w := &domain.World{
		Name:         f.Name,
		Mode:         f.Mode,
		ItemsPerGame: f.ItemsPerGame,
		Distractors:  f.Distractors,
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	w.Items = make([]domain.PoolItem, 0, len(f.Items))
	for i := range f.Items {
		node := &f.Items[i]
		var (
			item domain.PoolItem
			err  error
		)
		switch w.Mode {
		case domain.ModeVocab:
			var p domain.VocabPair
			err = node.Decode(&p)
			item = &p
		case domain.ModePhrase:
			var p domain.PhraseItem
			err = node.Decode(&p)
			item = &p
		}
		if err != nil {
			// An empty item fails validation, so the deck builder skips it
			// without shifting later chunk boundaries.
			logger.Warn("undecodable item kept as placeholder", "world", w.Name, "line", node.Line, "error", err)
			item = placeholderItem(w.Mode)
		}
		w.Items = append(w.Items, item)
	}
	return w, nil
}

func placeholderItem(mode domain.Mode) domain.PoolItem {
	if mode == domain.ModePhrase {
		return &domain.PhraseItem{}
	}
	return &domain.VocabPair{}
}

// Names implements Source. It lists the world files currently on disk.
func (s *FileSource) Names(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list worlds in %s: %w", s.dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != worldExt {
			continue
		}
		name := strings.TrimSuffix(e.Name(), worldExt)
		if ValidateName(name) == nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Invalidate clears the whole cache.
func (s *FileSource) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*domain.World)
}

// InvalidateWorld drops one cached world.
func (s *FileSource) InvalidateWorld(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, name)
}

func (s *FileSource) cached(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.cache[name]
	return ok
}
