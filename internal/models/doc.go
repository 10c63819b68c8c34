// Package models defines the domain entities persisted by the discovery
// pipeline.
//
//   - [ExcludedArtist] : an artist filtered out of discovery results
//   - [MusicGenre] : genre vocabulary driving search, seeded reference data
//   - [MusicSearchProgress] : the durable per-genre search cursor
//
// MusicSearchProgress is the single source of truth for how far a genre has
// been searched; it is what makes discovery resumable across restarts.
package models
