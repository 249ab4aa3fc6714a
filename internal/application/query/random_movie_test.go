package query

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/movie"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
)

type fakeCatalog struct {
	movies   []movie.CatalogMovie
	err      error
	lastPage int
}

func (c *fakeCatalog) PopularMovies(ctx context.Context, page int) ([]movie.CatalogMovie, error) {
	c.lastPage = page
	if c.err != nil {
		return nil, c.err
	}
	return c.movies, nil
}

func TestRandomMovie(t *testing.T) {
	catalog := &fakeCatalog{movies: []movie.CatalogMovie{
		{Title: "Inception", Overview: "A thief who steals corporate secrets."},
		{Title: "Interstellar", Overview: "A team of explorers."},
	}}
	// First draw picks the page, second picks the movie.
	draws := []int{4, 1}
	h := NewRandomMovieHandler(catalog, func(n int) int {
		d := draws[0]
		draws = draws[1:]
		return d
	}, nil)

	res, err := h.Handle(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 5, catalog.lastPage)
	assert.Equal(t, "Interstellar", res.Title)
}

func TestRandomMovie_TruncatesLongOverview(t *testing.T) {
	catalog := &fakeCatalog{movies: []movie.CatalogMovie{
		{Title: "Epic", Overview: strings.Repeat("é", 300)},
	}}
	h := NewRandomMovieHandler(catalog, func(n int) int { return 0 }, nil)

	res, err := h.Handle(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, strings.Repeat("é", 200)+"...", res.Overview)
}

func TestRandomMovie_EmptyPage(t *testing.T) {
	h := NewRandomMovieHandler(&fakeCatalog{}, func(n int) int { return 0 }, nil)

	_, err := h.Handle(context.Background())
	assert.Error(t, err)
}

func TestRandomMovie_CatalogErrorPropagates(t *testing.T) {
	catalog := &fakeCatalog{err: shared.ErrTMDBUnavailable}
	h := NewRandomMovieHandler(catalog, func(n int) int { return 0 }, nil)

	_, err := h.Handle(context.Background())
	assert.True(t, errors.Is(err, shared.ErrServiceUnavailable))
}
