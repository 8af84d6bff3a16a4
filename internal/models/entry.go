package models

import (
	"math"
	"strings"
	"unicode"
)

// wpmTechnical is the average words-per-minute reading speed for technical
// content, based on research suggesting ~238 WPM for technical material.
const wpmTechnical = 238

// BlogEntry is a single stored article. Title is the dedup key: titles are
// trimmed and compared case-insensitively, and no two stored entries may
// collide. Entries are never mutated after creation; the only lifecycle
// events are append and clear-all.
type BlogEntry struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ReadingMinutes estimates reading time for the entry content in minutes,
// using 238 WPM. Returns a minimum of 1 minute for non-empty content and 0
// for empty content.
func (e BlogEntry) ReadingMinutes() int {
	words := countWords(e.Content)
	if words == 0 {
		return 0
	}

	minutes := math.Ceil(float64(words) / wpmTechnical)
	if minutes < 1 {
		minutes = 1
	}
	return int(minutes)
}

// countWords counts whitespace- and punctuation-delimited words in the text.
func countWords(text string) int {
	count := 0
	inWord := false
	for _, r := range text {
		if unicode.IsSpace(r) || strings.ContainsRune(".,;:!?\"'()[]{}—–-", r) {
			if inWord {
				count++
				inWord = false
			}
		} else {
			inWord = true
		}
	}
	if inWord {
		count++
	}
	return count
}
