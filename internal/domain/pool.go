package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is shared by every pool item; validator caches struct metadata.
var validate = validator.New()

// PoolItem is one playable entry of a pool. It is either a *VocabPair or a
// *PhraseItem; the engine switches on the concrete type.
type PoolItem interface {
	// ItemID returns the stable identifier of the item within its pool.
	ItemID() string

	// Validate reports whether the item has every field the deck builder needs.
	Validate() error
}

// VocabPair is a word and its meaning, played as two cards that must be matched.
type VocabPair struct {
	ID            string `json:"id" yaml:"id" validate:"required"`
	PrimaryText   string `json:"primary_text" yaml:"primary_text" validate:"required"`
	SecondaryText string `json:"secondary_text" yaml:"secondary_text" validate:"required"`
	Image         string `json:"image,omitempty" yaml:"image,omitempty"`
	Explanation   string `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	PartOfSpeech  string `json:"part_of_speech,omitempty" yaml:"part_of_speech,omitempty"`
}

// ItemID implements PoolItem.
func (p *VocabPair) ItemID() string { return p.ID }

// Validate implements PoolItem.
func (p *VocabPair) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil vocabulary pair", ErrValidation)
	}
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: vocabulary pair %q: %v", ErrValidation, p.ID, err)
	}
	return nil
}

// OrderedToken is one piece of a phrase. Its position in PhraseItem.Tokens is
// the order in which it has to be revealed.
type OrderedToken struct {
	ID       string `json:"id" yaml:"id" validate:"required"`
	Text     string `json:"text" yaml:"text" validate:"required"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

// PhraseItem is a sentence to be rebuilt token by token.
type PhraseItem struct {
	ID          string         `json:"id" yaml:"id" validate:"required"`
	PromptText  string         `json:"prompt_text" yaml:"prompt_text"`
	Tokens      []OrderedToken `json:"tokens" yaml:"tokens" validate:"required,min=1,dive"`
	Explanation string         `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// ItemID implements PoolItem.
func (p *PhraseItem) ItemID() string { return p.ID }

// Validate implements PoolItem.
func (p *PhraseItem) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil phrase item", ErrValidation)
	}
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: phrase item %q: %v", ErrValidation, p.ID, err)
	}
	return nil
}

// ValidateDistractor checks a distractor token. Distractors share the token
// shape but are never part of a phrase.
func ValidateDistractor(t OrderedToken) error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("%w: distractor %q: %v", ErrValidation, t.ID, err)
	}
	return nil
}
