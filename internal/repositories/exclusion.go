package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/a-yossy/spotify-mcp/internal/models"
	"github.com/a-yossy/spotify-mcp/internal/shared"
)

// ExclusionRepository persists the artist exclusion list.
type ExclusionRepository struct {
	db          *sql.DB
	onDuplicate shared.DuplicatePolicy
}

// NewExclusionRepository creates an ExclusionRepository with the given
// database connection and duplicate-insert policy.
func NewExclusionRepository(db *sql.DB, onDuplicate shared.DuplicatePolicy) *ExclusionRepository {
	if onDuplicate == "" {
		onDuplicate = shared.DuplicateError
	}
	return &ExclusionRepository{db: db, onDuplicate: onDuplicate}
}

// FindByIDs returns the exclusion rows matching the given artist ids,
// newest id first. Empty input short-circuits to an empty result without
// touching storage.
func (r *ExclusionRepository) FindByIDs(ids []string) ([]models.ExcludedArtist, error) {
	if len(ids) == 0 {
		return []models.ExcludedArtist{}, nil
	}

	placeholders := strings.Repeat("?,", len(ids)-1) + "?"
	query := fmt.Sprintf(`
		SELECT id, name, created_at
		FROM excluded_artists
		WHERE id IN (%s)
		ORDER BY id DESC
	`, placeholders)

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: find excluded artists: %v", shared.ErrStorage, err)
	}
	defer rows.Close()

	var artists []models.ExcludedArtist
	for rows.Next() {
		var artist models.ExcludedArtist
		if err := rows.Scan(&artist.ID, &artist.Name, &artist.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan excluded artist: %v", shared.ErrStorage, err)
		}
		artists = append(artists, artist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate excluded artists: %v", shared.ErrStorage, err)
	}

	return artists, nil
}

// ContainsAny reports membership in the exclusion list for exactly the
// requested ids. One storage query for non-empty input, none for empty.
func (r *ExclusionRepository) ContainsAny(ids []string) (map[string]bool, error) {
	membership := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return membership, nil
	}

	excluded, err := r.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		membership[id] = false
	}
	for _, artist := range excluded {
		membership[artist.ID] = true
	}

	return membership, nil
}

// Insert adds a new artist to the exclusion list and returns the stored row
// with its database-assigned created_at. A duplicate id either surfaces
// [shared.ErrDuplicateExclusion] or returns the existing row unchanged,
// depending on the configured policy; the set never silently grows or
// shrinks either way.
func (r *ExclusionRepository) Insert(id, name string) (*models.ExcludedArtist, error) {
	artist := models.ExcludedArtist{ID: id, Name: name}
	if err := artist.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	_, err := r.db.Exec("INSERT INTO excluded_artists (id, name) VALUES (?, ?)", id, name)
	if err != nil {
		if !isConstraintErr(err) {
			return nil, fmt.Errorf("%w: insert excluded artist: %v", shared.ErrStorage, err)
		}
		if r.onDuplicate == shared.DuplicateError {
			return nil, fmt.Errorf("%w: %s", shared.ErrDuplicateExclusion, id)
		}
	}

	return r.get(id)
}

func (r *ExclusionRepository) get(id string) (*models.ExcludedArtist, error) {
	var artist models.ExcludedArtist
	err := r.db.QueryRow(
		"SELECT id, name, created_at FROM excluded_artists WHERE id = ?", id,
	).Scan(&artist.ID, &artist.Name, &artist.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: get excluded artist: %v", shared.ErrStorage, err)
	}
	return &artist, nil
}
