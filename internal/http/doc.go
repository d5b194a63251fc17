// Package http provides an HTTP client for fetching remote lyric documents.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Timeout handling
//   - Response size limits
//
// # Basic Usage
//
//	client := http.NewClient(30 * time.Second)
//
//	// Fetch an LRC document
//	text, err := client.GetString(ctx, "https://example.com/song.lrc")
package http
