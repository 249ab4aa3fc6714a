package movie

// Genres is the fixed list used by the random-genre novelty command.
var Genres = []string{
	"Action", "Comedy", "Drama", "Horror", "Sci-Fi", "Romance",
	"Thriller", "Fantasy", "Documentary", "Animation",
}

// RandomGenre picks a genre using the provided random index function
// (injected so callers and tests control the randomness source).
func RandomGenre(intn func(n int) int) string {
	return Genres[intn(len(Genres))]
}
