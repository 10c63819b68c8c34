package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/a-yossy/spotify-mcp/internal/models"
	"github.com/a-yossy/spotify-mcp/internal/shared"
)

// ProgressRepository persists the per-genre search cursor. The UNIQUE
// constraint on music_genre_id guarantees at most one row per genre; both
// write paths upsert against it.
type ProgressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a ProgressRepository with the given database connection.
func NewProgressRepository(db *sql.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// GetByGenre returns the progress row for a genre, or (nil, nil) when the
// genre has never been searched. Absence is an explicit result, not an
// error.
func (r *ProgressRepository) GetByGenre(genreID int64) (*models.MusicSearchProgress, error) {
	progress, err := r.scanOne(r.db.QueryRow(`
		SELECT id, music_genre_id, position, created_at, updated_at
		FROM music_search_progresses
		WHERE music_genre_id = ?
	`, genreID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get search progress: %v", shared.ErrStorage, err)
	}

	return progress, nil
}

// Upsert writes position for a genre unconditionally: it creates the row
// when absent and overwrites it otherwise (last-writer-wins). Calling it
// twice with the same arguments leaves a single row holding the second
// call's value.
func (r *ProgressRepository) Upsert(genreID int64, position int) (*models.MusicSearchProgress, error) {
	if position < 0 {
		return nil, fmt.Errorf("%w: position must be non-negative", shared.ErrInvalidInput)
	}

	_, err := r.db.Exec(`
		INSERT INTO music_search_progresses (music_genre_id, position)
		VALUES (?, ?)
		ON CONFLICT(music_genre_id) DO UPDATE SET
			position = excluded.position,
			updated_at = CURRENT_TIMESTAMP
	`, genreID, position)
	if err != nil {
		if isForeignKeyErr(err) {
			return nil, fmt.Errorf("%w: music genre %d", shared.ErrNotFound, genreID)
		}
		return nil, fmt.Errorf("%w: upsert search progress: %v", shared.ErrStorage, err)
	}

	return r.mustGet(genreID)
}

// AdvanceFrom moves a genre's position from expectedOld to newPosition in
// one guarded upsert. When no row exists it creates one at newPosition;
// when the stored position no longer equals expectedOld the write is
// rejected with [shared.ErrStaleProgress], so two overlapping steps for the
// same genre cannot silently skip a page.
func (r *ProgressRepository) AdvanceFrom(genreID int64, expectedOld, newPosition int) (*models.MusicSearchProgress, error) {
	if newPosition < 0 {
		return nil, fmt.Errorf("%w: position must be non-negative", shared.ErrInvalidInput)
	}

	result, err := r.db.Exec(`
		INSERT INTO music_search_progresses (music_genre_id, position)
		VALUES (?, ?)
		ON CONFLICT(music_genre_id) DO UPDATE SET
			position = excluded.position,
			updated_at = CURRENT_TIMESTAMP
		WHERE music_search_progresses.position = ?
	`, genreID, newPosition, expectedOld)
	if err != nil {
		if isForeignKeyErr(err) {
			return nil, fmt.Errorf("%w: music genre %d", shared.ErrNotFound, genreID)
		}
		return nil, fmt.Errorf("%w: advance search progress: %v", shared.ErrStorage, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: advance search progress: %v", shared.ErrStorage, err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: genre %d expected position %d", shared.ErrStaleProgress, genreID, expectedOld)
	}

	return r.mustGet(genreID)
}

func (r *ProgressRepository) mustGet(genreID int64) (*models.MusicSearchProgress, error) {
	progress, err := r.scanOne(r.db.QueryRow(`
		SELECT id, music_genre_id, position, created_at, updated_at
		FROM music_search_progresses
		WHERE music_genre_id = ?
	`, genreID))
	if err != nil {
		return nil, fmt.Errorf("%w: reload search progress: %v", shared.ErrStorage, err)
	}
	return progress, nil
}

func (r *ProgressRepository) scanOne(row *sql.Row) (*models.MusicSearchProgress, error) {
	var progress models.MusicSearchProgress
	err := row.Scan(
		&progress.ID,
		&progress.MusicGenreID,
		&progress.Position,
		&progress.CreatedAt,
		&progress.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &progress, nil
}
