package pool

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/phrazzld/scry-match/internal/domain"
)

// ErrWorldNotFound is returned when no source knows a world name.
var ErrWorldNotFound = errors.New("world not found")

// namePattern restricts world names to something safe to use as a file name.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)

// Source looks worlds up by name. Returned worlds are shared and must be
// treated as read-only.
type Source interface {
	World(ctx context.Context, name string) (*domain.World, error)
	Names(ctx context.Context) ([]string, error)
}

// ValidateName checks that name can identify a world.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: invalid world name %q", domain.ErrValidation, name)
	}
	return nil
}

// Chain consults its sources in order. The first source that knows a world
// wins; names are merged.
type Chain []Source

// World implements Source.
func (c Chain) World(ctx context.Context, name string) (*domain.World, error) {
	for _, src := range c {
		w, err := src.World(ctx, name)
		if err == nil {
			return w, nil
		}
		if !errors.Is(err, ErrWorldNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrWorldNotFound, name)
}

// Names implements Source.
func (c Chain) Names(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var names []string
	for _, src := range c {
		list, err := src.Names(ctx)
		if err != nil {
			return nil, err
		}
		for _, n := range list {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}
