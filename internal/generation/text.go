package generation

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/phrazzld/scry-match/internal/domain"
)

// TextGenerator builds items from a line-oriented text format:
//
//	# comment
//	perro = dog               vocab pair: primary = secondary
//	I am => yo soy            phrase: prompt => tokens separated by spaces
//	! tu eres                 phrase mode: distractor tokens
//
// Blank lines and comments are ignored.
type TextGenerator struct {
	logger *slog.Logger
}

// NewTextGenerator creates a TextGenerator.
func NewTextGenerator(logger *slog.Logger) *TextGenerator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &TextGenerator{logger: logger.With("component", "text_generator")}
}

// Generate implements Generator.
func (g *TextGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{}
	scanner := bufio.NewScanner(strings.NewReader(req.Text))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var err error
		switch req.Mode {
		case domain.ModeVocab:
			err = g.vocabLine(res, req.Name, lineNo, line)
		case domain.ModePhrase:
			err = g.phraseLine(res, req.Name, lineNo, line)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedMode, req.Mode)
		}
		if err != nil {
			res.Skipped++
			g.logger.Debug("skipped source line", "world", req.Name, "line", lineNo, "error", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if len(res.Items) == 0 {
		return nil, fmt.Errorf("%w: no playable entries in %d lines", ErrGenerationFailed, lineNo)
	}
	g.logger.Info("generated world items",
		"world", req.Name,
		"mode", req.Mode,
		"items", len(res.Items),
		"distractors", len(res.Distractors),
		"skipped", res.Skipped)
	return res, nil
}

func (g *TextGenerator) vocabLine(res *Result, world string, lineNo int, line string) error {
	primary, secondary, ok := strings.Cut(line, "=")
	if !ok {
		return fmt.Errorf("missing '=' separator")
	}
	pair := &domain.VocabPair{
		ID:            fmt.Sprintf("%s-%d", world, lineNo),
		PrimaryText:   strings.TrimSpace(primary),
		SecondaryText: strings.TrimSpace(secondary),
	}
	if err := pair.Validate(); err != nil {
		return err
	}
	res.Items = append(res.Items, pair)
	return nil
}

func (g *TextGenerator) phraseLine(res *Result, world string, lineNo int, line string) error {
	if rest, ok := strings.CutPrefix(line, "!"); ok {
		for i, word := range strings.Fields(rest) {
			res.Distractors = append(res.Distractors, domain.OrderedToken{
				ID:   fmt.Sprintf("%s-d%d-%d", world, lineNo, i),
				Text: word,
			})
		}
		return nil
	}

	prompt, sentence, ok := strings.Cut(line, "=>")
	if !ok {
		return fmt.Errorf("missing '=>' separator")
	}
	id := fmt.Sprintf("%s-%d", world, lineNo)
	words := strings.Fields(sentence)
	tokens := make([]domain.OrderedToken, len(words))
	for i, word := range words {
		tokens[i] = domain.OrderedToken{ID: fmt.Sprintf("%s-t%d", id, i), Text: word}
	}
	phrase := &domain.PhraseItem{
		ID:         id,
		PromptText: strings.TrimSpace(prompt),
		Tokens:     tokens,
	}
	if err := phrase.Validate(); err != nil {
		return err
	}
	res.Items = append(res.Items, phrase)
	return nil
}
