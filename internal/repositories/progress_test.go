package repositories

import (
	"errors"
	"testing"

	"github.com/a-yossy/spotify-mcp/internal/shared"
)

func TestProgressRepository(t *testing.T) {
	t.Run("GetByGenre Absent", func(t *testing.T) {
		repo := NewProgressRepository(setupTestDB(t))

		progress, err := repo.GetByGenre(1)
		if err != nil {
			t.Fatalf("absence should not be an error: %v", err)
		}
		if progress != nil {
			t.Errorf("expected nil progress for untracked genre, got %+v", progress)
		}
	})

	t.Run("Upsert Creates And Overwrites", func(t *testing.T) {
		repo := NewProgressRepository(setupTestDB(t))

		created, err := repo.Upsert(1, 0)
		if err != nil {
			t.Fatalf("failed to upsert: %v", err)
		}
		if created.MusicGenreID != 1 || created.Position != 0 {
			t.Errorf("unexpected row: %+v", created)
		}

		updated, err := repo.Upsert(1, 7)
		if err != nil {
			t.Fatalf("failed to upsert again: %v", err)
		}
		if updated.Position != 7 {
			t.Errorf("expected position 7, got %d", updated.Position)
		}
		if updated.ID != created.ID {
			t.Errorf("upsert must reuse the row, got id %d (was %d)", updated.ID, created.ID)
		}
	})

	t.Run("Upsert Idempotent", func(t *testing.T) {
		repo := NewProgressRepository(setupTestDB(t))

		if _, err := repo.Upsert(2, 3); err != nil {
			t.Fatalf("failed to upsert: %v", err)
		}
		if _, err := repo.Upsert(2, 3); err != nil {
			t.Fatalf("repeat upsert should succeed: %v", err)
		}

		progress, err := repo.GetByGenre(2)
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if progress.Position != 3 {
			t.Errorf("expected position 3, got %d", progress.Position)
		}
	})

	t.Run("Upsert Unknown Genre", func(t *testing.T) {
		repo := NewProgressRepository(setupTestDB(t))

		_, err := repo.Upsert(9999, 0)
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound for unknown genre, got %v", err)
		}
	})

	t.Run("Upsert Rejects Negative Position", func(t *testing.T) {
		repo := NewProgressRepository(setupTestDB(t))

		_, err := repo.Upsert(1, -1)
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("AdvanceFrom Sequence", func(t *testing.T) {
		repo := NewProgressRepository(setupTestDB(t))

		for step := 0; step < 5; step++ {
			progress, err := repo.AdvanceFrom(1, step, step+1)
			if err != nil {
				t.Fatalf("advance %d failed: %v", step, err)
			}
			if progress.Position != step+1 {
				t.Errorf("expected position %d, got %d", step+1, progress.Position)
			}
		}

		progress, err := repo.GetByGenre(1)
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if progress.Position != 5 {
			t.Errorf("expected position 5 after 5 advances, got %d", progress.Position)
		}
	})

	t.Run("AdvanceFrom Stale", func(t *testing.T) {
		repo := NewProgressRepository(setupTestDB(t))

		if _, err := repo.Upsert(1, 4); err != nil {
			t.Fatalf("failed to upsert: %v", err)
		}

		_, err := repo.AdvanceFrom(1, 3, 4)
		if !errors.Is(err, shared.ErrStaleProgress) {
			t.Errorf("expected ErrStaleProgress, got %v", err)
		}

		progress, err := repo.GetByGenre(1)
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if progress.Position != 4 {
			t.Errorf("stale advance must not move the cursor, got %d", progress.Position)
		}
	})

	t.Run("AdvanceFrom Creates Row", func(t *testing.T) {
		repo := NewProgressRepository(setupTestDB(t))

		progress, err := repo.AdvanceFrom(3, 0, 1)
		if err != nil {
			t.Fatalf("advance on untracked genre failed: %v", err)
		}
		if progress.Position != 1 {
			t.Errorf("expected position 1, got %d", progress.Position)
		}
	})
}
