// Package search filters the queue by Unicode-normalized substring
// matching over a configurable set of song fields.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mpdash/mpdash/internal/mpd"
)

// Fields selects which song fields participate in matching.
type Fields struct {
	File   bool
	Title  bool
	Artist bool
	Album  bool
}

// Normalize case-folds text and strips combining diacritical marks
// (canonical decomposition, then mark removal), so "Café" and "CAFE"
// compare equal while base letters keep their identity.
func Normalize(text string) string {
	folded := cases.Fold().String(text)
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn))),
		folded,
	)
	if err != nil {
		return folded
	}
	return stripped
}

// Document holds a song's fields in normalized form, computed once per
// queue replacement and reused across keystrokes.
type Document struct {
	File   string
	Title  string
	Artist string
	Album  string
}

// NewDocument normalizes one song.
func NewDocument(song mpd.Song) Document {
	return Document{
		File:   Normalize(song.File),
		Title:  Normalize(song.Title),
		Artist: Normalize(song.Artist),
		Album:  Normalize(song.Album),
	}
}

// NewDocuments normalizes a whole queue.
func NewDocuments(queue []mpd.Song) []Document {
	docs := make([]Document, len(queue))
	for i, song := range queue {
		docs[i] = NewDocument(song)
	}
	return docs
}

// match reports whether the already-normalized query is a substring of
// any enabled field. Fields are checked independently; a query never
// matches across a field boundary.
func (d Document) match(query string, fields Fields) bool {
	if fields.File && strings.Contains(d.File, query) {
		return true
	}
	if fields.Title && strings.Contains(d.Title, query) {
		return true
	}
	if fields.Artist && strings.Contains(d.Artist, query) {
		return true
	}
	if fields.Album && strings.Contains(d.Album, query) {
		return true
	}
	return false
}

// Matches reports whether a song matches the query under the enabled
// fields. An empty query matches every song.
func Matches(song mpd.Song, query string, fields Fields) bool {
	if query == "" {
		return true
	}
	return NewDocument(song).match(Normalize(query), fields)
}

// Filter returns the queue positions matching the query, in queue order.
// Every call normalizes the whole queue again; FilterDocs skips that.
func Filter(queue []mpd.Song, query string, fields Fields) []int {
	return FilterDocs(NewDocuments(queue), query, fields)
}

// FilterDocs is Filter over pre-normalized documents.
func FilterDocs(docs []Document, query string, fields Fields) []int {
	indices := make([]int, 0, len(docs))
	if query == "" {
		for i := range docs {
			indices = append(indices, i)
		}
		return indices
	}
	q := Normalize(query)
	for i, doc := range docs {
		if doc.match(q, fields) {
			indices = append(indices, i)
		}
	}
	return indices
}
