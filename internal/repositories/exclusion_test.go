package repositories

import (
	"errors"
	"testing"

	"github.com/a-yossy/spotify-mcp/internal/shared"
)

func TestExclusionRepository(t *testing.T) {
	t.Run("Insert And FindByIDs", func(t *testing.T) {
		repo := NewExclusionRepository(setupTestDB(t), shared.DuplicateError)

		artist, err := repo.Insert("artist1", "First")
		if err != nil {
			t.Fatalf("failed to insert: %v", err)
		}
		if artist.ID != "artist1" || artist.Name != "First" {
			t.Errorf("unexpected stored row: %+v", artist)
		}
		if artist.CreatedAt.IsZero() {
			t.Error("expected database-assigned created_at")
		}

		if _, err := repo.Insert("artist2", "Second"); err != nil {
			t.Fatalf("failed to insert second: %v", err)
		}

		found, err := repo.FindByIDs([]string{"artist1", "artist2", "artist3"})
		if err != nil {
			t.Fatalf("failed to find: %v", err)
		}
		if len(found) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(found))
		}
		if found[0].ID != "artist2" || found[1].ID != "artist1" {
			t.Errorf("expected newest id first, got %s, %s", found[0].ID, found[1].ID)
		}
	})

	t.Run("FindByIDs Empty Input", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewExclusionRepository(db, shared.DuplicateError)

		// Closing the database proves the empty lookup never touches storage.
		db.Close()

		found, err := repo.FindByIDs(nil)
		if err != nil {
			t.Fatalf("empty lookup should not touch storage: %v", err)
		}
		if len(found) != 0 {
			t.Errorf("expected empty result, got %d rows", len(found))
		}
	})

	t.Run("ContainsAny", func(t *testing.T) {
		repo := NewExclusionRepository(setupTestDB(t), shared.DuplicateError)

		if _, err := repo.Insert("artist1", "First"); err != nil {
			t.Fatalf("failed to insert: %v", err)
		}

		membership, err := repo.ContainsAny([]string{"artist1", "artist2"})
		if err != nil {
			t.Fatalf("failed to check membership: %v", err)
		}
		if len(membership) != 2 {
			t.Fatalf("expected entries for exactly the requested ids, got %v", membership)
		}
		if !membership["artist1"] {
			t.Error("expected artist1 to be excluded")
		}
		if membership["artist2"] {
			t.Error("expected artist2 not to be excluded")
		}
	})

	t.Run("ContainsAny Empty Input", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewExclusionRepository(db, shared.DuplicateError)
		db.Close()

		membership, err := repo.ContainsAny(nil)
		if err != nil {
			t.Fatalf("empty check should not touch storage: %v", err)
		}
		if len(membership) != 0 {
			t.Errorf("expected empty membership, got %v", membership)
		}
	})

	t.Run("Duplicate Insert Error Policy", func(t *testing.T) {
		repo := NewExclusionRepository(setupTestDB(t), shared.DuplicateError)

		if _, err := repo.Insert("artist1", "First"); err != nil {
			t.Fatalf("failed to insert: %v", err)
		}

		_, err := repo.Insert("artist1", "Renamed")
		if !errors.Is(err, shared.ErrDuplicateExclusion) {
			t.Errorf("expected ErrDuplicateExclusion, got %v", err)
		}

		found, err := repo.FindByIDs([]string{"artist1"})
		if err != nil {
			t.Fatalf("failed to find: %v", err)
		}
		if len(found) != 1 || found[0].Name != "First" {
			t.Errorf("duplicate insert must not change the stored row: %+v", found)
		}
	})

	t.Run("Duplicate Insert Ignore Policy", func(t *testing.T) {
		repo := NewExclusionRepository(setupTestDB(t), shared.DuplicateIgnore)

		first, err := repo.Insert("artist1", "First")
		if err != nil {
			t.Fatalf("failed to insert: %v", err)
		}

		again, err := repo.Insert("artist1", "Renamed")
		if err != nil {
			t.Fatalf("re-insert under ignore policy should succeed: %v", err)
		}
		if again.Name != first.Name {
			t.Errorf("expected existing row unchanged, got name %q", again.Name)
		}
	})

	t.Run("Insert Validates Input", func(t *testing.T) {
		repo := NewExclusionRepository(setupTestDB(t), shared.DuplicateError)

		if _, err := repo.Insert("", "First"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for empty id, got %v", err)
		}
		if _, err := repo.Insert("artist1", ""); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for empty name, got %v", err)
		}
	})
}
