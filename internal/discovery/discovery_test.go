package discovery

import (
	"context"
	"errors"
	"testing"

	"github.com/a-yossy/spotify-mcp/internal/models"
	"github.com/a-yossy/spotify-mcp/internal/spotify"
	tu "github.com/a-yossy/spotify-mcp/internal/testing"
)

func testGenre() *models.MusicGenre {
	return &models.MusicGenre{ID: 1, Name: "Jazz", SearchKey: "jazz"}
}

func testPage(total int, ids ...string) *spotify.SearchPage {
	page := &spotify.SearchPage{Total: total}
	for _, id := range ids {
		page.Items = append(page.Items, spotify.Artist{ID: id, Name: "Artist " + id})
	}
	return page
}

func TestOrchestratorStep(t *testing.T) {
	t.Run("Unstarted Genre", func(t *testing.T) {
		tokens := &tu.StubTokenSource{AccessToken: "token"}
		search := &tu.StubSearcher{Page: testPage(100, "a", "b")}
		exclusions := &tu.StubExclusions{}
		progress := tu.NewStubProgress()

		o := NewOrchestrator(tokens, search, exclusions, progress, 20, nil)

		result, err := o.Step(context.Background(), testGenre())
		if err != nil {
			t.Fatalf("step failed: %v", err)
		}

		if search.LastOffset != 0 {
			t.Errorf("expected first fetch at offset 0, got %d", search.LastOffset)
		}
		if search.LastLimit != 20 {
			t.Errorf("expected limit 20, got %d", search.LastLimit)
		}
		if search.LastGenre != "jazz" {
			t.Errorf("expected search key jazz, got %q", search.LastGenre)
		}
		if search.LastToken != "token" {
			t.Errorf("expected fresh token passed through, got %q", search.LastToken)
		}

		if result.PositionBefore != 0 || result.PositionAfter != 1 {
			t.Errorf("expected position 0 -> 1, got %d -> %d", result.PositionBefore, result.PositionAfter)
		}
		if progress.Rows[1] == nil || progress.Rows[1].Position != 1 {
			t.Errorf("expected committed position 1, got %+v", progress.Rows[1])
		}
		if len(result.Artists) != 2 {
			t.Errorf("expected 2 artists, got %d", len(result.Artists))
		}
	})

	t.Run("Resumes From Stored Position", func(t *testing.T) {
		tokens := &tu.StubTokenSource{AccessToken: "token"}
		search := &tu.StubSearcher{Page: testPage(100, "a")}
		progress := tu.NewStubProgress()
		progress.Rows[1] = &models.MusicSearchProgress{MusicGenreID: 1, Position: 3}

		o := NewOrchestrator(tokens, search, &tu.StubExclusions{}, progress, 20, nil)

		result, err := o.Step(context.Background(), testGenre())
		if err != nil {
			t.Fatalf("step failed: %v", err)
		}

		if search.LastOffset != 60 {
			t.Errorf("expected offset 60 for position 3 at page size 20, got %d", search.LastOffset)
		}
		if result.PositionAfter != 4 {
			t.Errorf("expected position 4, got %d", result.PositionAfter)
		}
	})

	t.Run("Exclusion Filtering", func(t *testing.T) {
		tokens := &tu.StubTokenSource{AccessToken: "token"}
		search := &tu.StubSearcher{Page: testPage(100, "a", "b", "c")}
		exclusions := &tu.StubExclusions{Excluded: map[string]bool{"b": true}}
		progress := tu.NewStubProgress()

		o := NewOrchestrator(tokens, search, exclusions, progress, 20, nil)

		result, err := o.Step(context.Background(), testGenre())
		if err != nil {
			t.Fatalf("step failed: %v", err)
		}

		if len(result.Artists) != 2 {
			t.Fatalf("expected 2 kept artists, got %d", len(result.Artists))
		}
		if result.Artists[0].ID != "a" || result.Artists[1].ID != "c" {
			t.Errorf("expected a and c kept in order, got %s, %s", result.Artists[0].ID, result.Artists[1].ID)
		}
		if len(result.ExcludedIDs) != 1 || result.ExcludedIDs[0] != "b" {
			t.Errorf("expected b filtered out, got %v", result.ExcludedIDs)
		}

		// Filtering must not change how far the cursor moves.
		if progress.Rows[1].Position != 1 {
			t.Errorf("expected position 1 regardless of filtering, got %d", progress.Rows[1].Position)
		}
	})

	t.Run("Token Failure Leaves Cursor", func(t *testing.T) {
		tokens := &tu.StubTokenSource{Err: errors.New("auth down")}
		search := &tu.StubSearcher{Page: testPage(100, "a")}
		progress := tu.NewStubProgress()

		o := NewOrchestrator(tokens, search, &tu.StubExclusions{}, progress, 20, nil)

		if _, err := o.Step(context.Background(), testGenre()); err == nil {
			t.Fatal("expected step to fail")
		}
		if search.Calls != 0 {
			t.Error("expected no fetch after token failure")
		}
		if progress.AdvanceCall != 0 {
			t.Error("expected no advance after token failure")
		}
	})

	t.Run("Fetch Failure Leaves Cursor", func(t *testing.T) {
		tokens := &tu.StubTokenSource{AccessToken: "token"}
		search := &tu.StubSearcher{Err: errors.New("upstream down")}
		progress := tu.NewStubProgress()
		progress.Rows[1] = &models.MusicSearchProgress{MusicGenreID: 1, Position: 2}

		o := NewOrchestrator(tokens, search, &tu.StubExclusions{}, progress, 20, nil)

		if _, err := o.Step(context.Background(), testGenre()); err == nil {
			t.Fatal("expected step to fail")
		}
		if progress.AdvanceCall != 0 {
			t.Error("expected no advance after fetch failure")
		}
		if progress.Rows[1].Position != 2 {
			t.Errorf("expected cursor untouched at 2, got %d", progress.Rows[1].Position)
		}
	})

	t.Run("Commit Failure Surfaces", func(t *testing.T) {
		tokens := &tu.StubTokenSource{AccessToken: "token"}
		search := &tu.StubSearcher{Page: testPage(100, "a")}
		progress := tu.NewStubProgress()
		progress.AdvanceErr = errors.New("disk full")

		o := NewOrchestrator(tokens, search, &tu.StubExclusions{}, progress, 20, nil)

		_, err := o.Step(context.Background(), testGenre())
		if err == nil {
			t.Fatal("expected commit failure to surface")
		}
		if !errors.Is(err, progress.AdvanceErr) {
			t.Errorf("expected wrapped store error, got %v", err)
		}
	})

	t.Run("Exhaustion", func(t *testing.T) {
		cases := []struct {
			name string
			page *spotify.SearchPage
			pos  int
			want bool
		}{
			{name: "empty page", page: testPage(40), pos: 2, want: true},
			{name: "final page", page: testPage(22, "a", "b"), pos: 1, want: true},
			{name: "more pages remain", page: testPage(100, "a", "b"), pos: 0, want: false},
		}

		for _, tt := range cases {
			t.Run(tt.name, func(t *testing.T) {
				progress := tu.NewStubProgress()
				if tt.pos > 0 {
					progress.Rows[1] = &models.MusicSearchProgress{MusicGenreID: 1, Position: tt.pos}
				}

				o := NewOrchestrator(
					&tu.StubTokenSource{AccessToken: "token"},
					&tu.StubSearcher{Page: tt.page},
					&tu.StubExclusions{},
					progress,
					20,
					nil,
				)

				result, err := o.Step(context.Background(), testGenre())
				if err != nil {
					t.Fatalf("step failed: %v", err)
				}
				if result.Exhausted != tt.want {
					t.Errorf("Exhausted = %v, want %v", result.Exhausted, tt.want)
				}
			})
		}
	})

	t.Run("Page Size Bounds", func(t *testing.T) {
		o := NewOrchestrator(nil, nil, nil, nil, 0, nil)
		if o.pageSize != 20 {
			t.Errorf("expected default page size 20, got %d", o.pageSize)
		}

		o = NewOrchestrator(nil, nil, nil, nil, 500, nil)
		if o.pageSize != spotify.MaxSearchLimit {
			t.Errorf("expected page size clamped to %d, got %d", spotify.MaxSearchLimit, o.pageSize)
		}
	})
}
