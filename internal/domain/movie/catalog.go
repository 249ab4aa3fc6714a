package movie

import (
	"context"
)

// CatalogMovie is a movie from the external metadata catalog.
type CatalogMovie struct {
	Title    string
	Overview string
}

// Catalog is the port for the external movie-metadata lookup service.
type Catalog interface {
	// PopularMovies returns a page of currently popular movies.
	// Pages are 1-indexed.
	PopularMovies(ctx context.Context, page int) ([]CatalogMovie, error)
}
