// Package markdown loads content entries from disk: front matter decoding,
// directory discovery, and goldmark-based body inspection.
package markdown
