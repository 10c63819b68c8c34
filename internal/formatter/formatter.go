// package formatter renders tool results as the plain text returned to the
// MCP caller
package formatter

import (
	"fmt"
	"strings"

	"github.com/a-yossy/spotify-mcp/internal/discovery"
	"github.com/a-yossy/spotify-mcp/internal/models"
	"github.com/a-yossy/spotify-mcp/internal/spotify"
)

// SearchResults renders one page of artist search results for a genre.
func SearchResults(genre string, page *spotify.SearchPage) string {
	if len(page.Items) == 0 {
		return fmt.Sprintf("No artists found for genre %q.", genre)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Search results for genre %q (offset %d, %d of %d total):\n\n",
		genre, page.Offset, len(page.Items), page.Total)
	writeArtists(&b, page.Items)
	return b.String()
}

// DiscoveryStep renders the outcome of one discovery step.
func DiscoveryStep(result *discovery.StepResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Discovery step for genre %q: position %d -> %d (total %d upstream)\n",
		result.Genre.SearchKey, result.PositionBefore, result.PositionAfter, result.Total)

	if len(result.ExcludedIDs) > 0 {
		fmt.Fprintf(&b, "Filtered out %d excluded artist(s): %s\n",
			len(result.ExcludedIDs), strings.Join(result.ExcludedIDs, ", "))
	}

	if len(result.Artists) == 0 {
		b.WriteString("No new artists on this page.\n")
	} else {
		b.WriteString("\n")
		writeArtists(&b, result.Artists)
	}

	if result.Exhausted {
		b.WriteString("\nThis genre's search results are exhausted.\n")
	}

	return b.String()
}

func writeArtists(b *strings.Builder, artists []spotify.Artist) {
	for _, artist := range artists {
		fmt.Fprintf(b, "Artist ID: %s\nName: %s\nGenres: %s\nPopularity: %d\nURI: %s\n\n",
			artist.ID, artist.Name, strings.Join(artist.Genres, ","), artist.Popularity, artist.URI)
	}
}

// FollowedArtists renders the full followed-artists list.
func FollowedArtists(artists []spotify.FollowedArtist) string {
	if len(artists) == 0 {
		return "You are not following any artists."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Followed artists (%d):\n", len(artists))
	for _, artist := range artists {
		fmt.Fprintf(&b, "%s\t%s\n", artist.ID, artist.Name)
	}
	return b.String()
}

// FollowStatus renders per-artist follow membership. The results slice is
// parallel to ids, as returned by the contains endpoint.
func FollowStatus(ids []string, following []bool) string {
	var b strings.Builder
	b.WriteString("Follow status:\n")
	for i, id := range ids {
		status := "not following"
		if i < len(following) && following[i] {
			status = "following"
		}
		fmt.Fprintf(&b, "%s: %s\n", id, status)
	}
	return b.String()
}

// ExcludedArtists renders the exclusion rows matching a lookup.
func ExcludedArtists(artists []models.ExcludedArtist) string {
	if len(artists) == 0 {
		return "None of the given artists are excluded."
	}

	var b strings.Builder
	b.WriteString("Excluded artists:\n")
	for _, artist := range artists {
		fmt.Fprintf(&b, "Artist ID: %s\nName: %s\nExcluded at: %s\n\n",
			artist.ID, artist.Name, artist.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return b.String()
}

// ExclusionAdded confirms an exclusion-list insert.
func ExclusionAdded(artist *models.ExcludedArtist) string {
	return fmt.Sprintf("Added %q (%s) to the exclusion list.", artist.Name, artist.ID)
}

// Genres renders the genre vocabulary.
func Genres(genres []models.MusicGenre) string {
	if len(genres) == 0 {
		return "No music genres are seeded. Run `spotify-mcp genres seed`."
	}

	var b strings.Builder
	b.WriteString("Music genres:\n")
	for _, genre := range genres {
		fmt.Fprintf(&b, "ID: %d\nName: %s\nSearch key: %s\n\n", genre.ID, genre.Name, genre.SearchKey)
	}
	return b.String()
}

// Progress renders a genre's stored search position. A nil progress means
// the genre has never been searched.
func Progress(genreID int64, progress *models.MusicSearchProgress) string {
	if progress == nil {
		return fmt.Sprintf("No search progress recorded for music genre %d.", genreID)
	}
	return fmt.Sprintf("Music genre ID: %d\nCurrent search position: %d",
		progress.MusicGenreID, progress.Position)
}

// TopTracks renders an artist's top tracks.
func TopTracks(artistID string, tracks []spotify.Track) string {
	if len(tracks) == 0 {
		return fmt.Sprintf("No top tracks found for artist %s.", artistID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Top tracks for artist %s:\n", artistID)
	for _, track := range tracks {
		fmt.Fprintf(&b, "%s\t%s\t%s\n", track.Name, track.URI, track.ExternalURLs.Spotify)
	}
	return b.String()
}
