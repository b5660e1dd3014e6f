// Package models defines the persisted diary types and their JSON shapes.
package models

import (
	"strconv"
	"time"
)

const (
	// DateLayout is the calendar-date key used for grouping ("YYYY-MM-DD").
	DateLayout = "2006-01-02"

	// TimestampLayout is the display form of an entry's creation time. It is
	// chosen to be both human-readable and lexically ordered, so recency
	// comparisons can be done on the string value directly.
	TimestampLayout = "2006-01-02 15:04:05"
)

// DiaryEntry is one diary record. ID is derived from the creation instant
// (unix milliseconds) and stays stable for the entry's lifetime. Date is
// computed once at creation and never recomputed. Image is an optional
// reference to locally stored media.
type DiaryEntry struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	Image     string `json:"image,omitempty"`
	Date      string `json:"date"`
}

// NewEntry builds a DiaryEntry stamped from the given clock instant.
// Callers own ID uniqueness; two entries created in the same millisecond
// would collide, which the single-writer UI discipline rules out.
func NewEntry(title, text, image string, now time.Time) DiaryEntry {
	return DiaryEntry{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Title:     title,
		Text:      text,
		Image:     image,
		Timestamp: now.Format(TimestampLayout),
		Date:      now.Format(DateLayout),
	}
}
