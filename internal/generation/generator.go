package generation

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/scry-match/internal/domain"
)

var validate = validator.New()

// Request describes the world to generate.
type Request struct {
	Name string      `json:"name" validate:"required,max=64"`
	Mode domain.Mode `json:"mode" validate:"required,oneof=vocab phrase"`
	Text string      `json:"text" validate:"required,max=65536"`

	// ItemsPerGame is copied onto the generated world; 0 keeps the default.
	ItemsPerGame int `json:"items_per_game,omitempty" validate:"gte=0"`
}

// Validate checks the request fields.
func (r Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

// Result is the output of a generation run.
type Result struct {
	Items       []domain.PoolItem
	Distractors []domain.OrderedToken

	// Skipped counts source entries that could not be turned into items.
	Skipped int
}

// Generator defines the interface for generating pool items from text.
// This interface serves as a boundary between the game and external content
// producers, following the hexagonal architecture pattern.
type Generator interface {
	// Generate creates pool items for req.Mode from req.Text. It returns
	// ErrGenerationFailed when nothing playable was produced.
	Generate(ctx context.Context, req Request) (*Result, error)
}
