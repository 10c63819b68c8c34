package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/a-yossy/spotify-mcp/internal/models"
	"github.com/a-yossy/spotify-mcp/internal/shared"
)

// GenreRepository reads the genre vocabulary. Genres are reference data
// seeded by migrations or the `genres seed` command; nothing else writes
// them.
type GenreRepository struct {
	db *sql.DB
}

// NewGenreRepository creates a GenreRepository with the given database connection.
func NewGenreRepository(db *sql.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

// FindAll returns every genre ordered by id.
func (r *GenreRepository) FindAll() ([]models.MusicGenre, error) {
	rows, err := r.db.Query(`
		SELECT id, name, search_key, created_at, updated_at
		FROM music_genres
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: find genres: %v", shared.ErrStorage, err)
	}
	defer rows.Close()

	var genres []models.MusicGenre
	for rows.Next() {
		var genre models.MusicGenre
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.SearchKey, &genre.CreatedAt, &genre.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan genre: %v", shared.ErrStorage, err)
		}
		genres = append(genres, genre)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate genres: %v", shared.ErrStorage, err)
	}

	return genres, nil
}

// Get retrieves a genre by id. A missing genre wraps [shared.ErrNotFound].
func (r *GenreRepository) Get(id int64) (*models.MusicGenre, error) {
	var genre models.MusicGenre
	err := r.db.QueryRow(`
		SELECT id, name, search_key, created_at, updated_at
		FROM music_genres
		WHERE id = ?
	`, id).Scan(&genre.ID, &genre.Name, &genre.SearchKey, &genre.CreatedAt, &genre.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: music genre %d", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get genre: %v", shared.ErrStorage, err)
	}

	return &genre, nil
}

// Seed inserts the given genres, skipping any whose search_key already
// exists. Safe to run repeatedly.
func (r *GenreRepository) Seed(genres []models.MusicGenre) error {
	for _, genre := range genres {
		_, err := r.db.Exec(
			"INSERT OR IGNORE INTO music_genres (id, name, search_key) VALUES (?, ?, ?)",
			genre.ID, genre.Name, genre.SearchKey,
		)
		if err != nil {
			return fmt.Errorf("%w: seed genre %q: %v", shared.ErrStorage, genre.SearchKey, err)
		}
	}
	return nil
}
