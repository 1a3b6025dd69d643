// Package logtail reads and colorizes the flightdeck log file.
//
// # Reading Log Files
//
// Read returns the last N lines of a file using a ring buffer, so memory
// stays at O(maxLines) however large the log grows:
//
//  1. Allocate ring buffer of size maxLines
//  2. For each line in file:
//     - Store line at current index
//     - Increment index (wrapping at maxLines)
//     - Track total lines seen
//  3. If total < maxLines, return the first 'count' entries
//  4. Otherwise return the buffer starting at the current index
//
// A missing file reads as empty. Other I/O errors are returned wrapped.
//
// # Colorization
//
// Colorize understands lines from the charmbracelet/log text formatter:
//
//	2026-01-02 15:04:05 INFO keychains fetched load=5f0c... count=2
//
// The timestamp, level and key= prefixes get styles from a Palette, which
// the UI derives from the active theme. Lines in any other shape pass
// through untouched.
//
// # Design Rationale
//
// The package only reads and formats. Refreshing the overlay is the UI's
// job, and rotation is handled when the log is opened.
package logtail
