package models

import (
	"fmt"
	"time"
)

// ExcludedArtist is a persisted exclusion-list entry. Rows are created by
// explicit insertion and never updated or deleted.
type ExcludedArtist struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Validate checks the entry's data before insertion.
func (a *ExcludedArtist) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("excluded artist id is required")
	}
	if a.Name == "" {
		return fmt.Errorf("excluded artist name is required")
	}
	return nil
}

// MusicGenre is read-only reference data defining the genre vocabulary.
// SearchKey is the value interpolated into the upstream genre filter.
type MusicGenre struct {
	ID        int64
	Name      string
	SearchKey string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MusicSearchProgress is the persisted per-genre search cursor. Position
// counts pages already consumed; exactly zero or one row exists per genre.
type MusicSearchProgress struct {
	ID           int64
	MusicGenreID int64
	Position     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
