package pool_test

import (
	"context"
	"testing"

	"github.com/phrazzld/scry-match/internal/domain"
	"github.com/phrazzld/scry-match/internal/generation"
	"github.com/phrazzld/scry-match/internal/mocks"
	"github.com/phrazzld/scry-match/internal/pool"
	"github.com/phrazzld/scry-match/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratedSource(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gen := mocks.NewMockGeneratorWithItems(testutils.VocabPairs(3)...)
	src := pool.NewGeneratedSource(gen, 0, nil)

	req := generation.Request{Name: "mine", Mode: domain.ModeVocab, Text: "ignored", ItemsPerGame: 2}
	w, err := src.Generate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "mine", w.Name)
	assert.Equal(t, 2, w.ItemsPerGame)
	assert.Len(t, w.Items, 3)
	assert.Equal(t, []generation.Request{req}, gen.Requests())

	got, err := src.World(ctx, "mine")
	require.NoError(t, err)
	assert.Same(t, w, got)

	names, err := src.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"mine"}, names)

	src.Forget("mine")
	_, err = src.World(ctx, "mine")
	assert.ErrorIs(t, err, pool.ErrWorldNotFound)
}

func TestGeneratedSourceErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("generator failure", func(t *testing.T) {
		src := pool.NewGeneratedSource(mocks.MockGeneratorThatFails(), 0, nil)
		_, err := src.Generate(ctx, generation.Request{Name: "w", Mode: domain.ModeVocab, Text: "x"})
		assert.ErrorIs(t, err, generation.ErrGenerationFailed)

		names, _ := src.Names(ctx)
		assert.Empty(t, names)
	})

	t.Run("invalid name never reaches the generator", func(t *testing.T) {
		gen := mocks.NewMockGeneratorWithItems(testutils.VocabPairs(1)...)
		src := pool.NewGeneratedSource(gen, 0, nil)
		_, err := src.Generate(ctx, generation.Request{Name: "a/b", Mode: domain.ModeVocab, Text: "x"})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, gen.Requests())
	})
}

func TestGeneratedSourceWithTextGenerator(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	src := pool.NewGeneratedSource(generation.NewTextGenerator(nil), 0, nil)

	w, err := src.Generate(ctx, generation.Request{
		Name: "basics",
		Mode: domain.ModePhrase,
		Text: "I am => yo soy\n! tu",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ModePhrase, w.Mode)
	assert.Len(t, w.Items, 1)
	assert.Len(t, w.Distractors, 1)
}

func TestGeneratedSourceLimit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gen := mocks.NewMockGeneratorWithItems(testutils.VocabPairs(1)...)
	src := pool.NewGeneratedSource(gen, 2, nil)
	request := func(name string) generation.Request {
		return generation.Request{Name: name, Mode: domain.ModeVocab, Text: "x"}
	}

	_, err := src.Generate(ctx, request("one"))
	require.NoError(t, err)
	_, err = src.Generate(ctx, request("two"))
	require.NoError(t, err)

	_, err = src.Generate(ctx, request("three"))
	assert.ErrorIs(t, err, pool.ErrTooManyWorlds)
	assert.Len(t, gen.Requests(), 2, "a full source does not call the generator")

	_, err = src.Generate(ctx, request("two"))
	assert.NoError(t, err, "replacing a stored world is allowed when full")

	src.Forget("one")
	_, err = src.Generate(ctx, request("three"))
	assert.NoError(t, err)

	names, err := src.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"three", "two"}, names)
}
