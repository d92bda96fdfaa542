package models

import (
	"encoding/json"
	"strings"
)

const worksPrefix = "/works/"

// NormalizeWorkID strips the "/works/" prefix the catalog puts on search
// results, so "/works/OL123W" and "OL123W" address the same work.
func NormalizeWorkID(id string) string {
	return strings.TrimPrefix(strings.TrimSpace(id), worksPrefix)
}

// BookSummary is a search or list result. Optional fields are nil when the
// catalog does not know them.
type BookSummary struct {
	WorkID           string
	Title            string
	AuthorName       *string
	FirstPublishYear *int
	PageCountMedian  *int
	CoverURL         *string
}

// bookWire covers both record shapes the backend returns: search results
// (author_name, smallCoverURL) and stored/ISBN records (bookAuthor, cover).
type bookWire struct {
	ID               string   `json:"id,omitempty"`
	WorkID           string   `json:"workID"`
	Title            string   `json:"title"`
	AuthorNames      []string `json:"author_name,omitempty"`
	BookAuthor       *string  `json:"bookAuthor,omitempty"`
	FirstPublishYear *int     `json:"first_publish_year,omitempty"`
	PageCountMedian  *int     `json:"number_of_pages_median,omitempty"`
	SmallCoverURL    *string  `json:"smallCoverURL,omitempty"`
	Cover            *string  `json:"cover,omitempty"`
	Description      *string  `json:"description,omitempty"`
	Status           Status   `json:"status,omitempty"`
}

func (w bookWire) summary() BookSummary {
	b := BookSummary{
		WorkID:           NormalizeWorkID(w.WorkID),
		Title:            w.Title,
		FirstPublishYear: w.FirstPublishYear,
		PageCountMedian:  w.PageCountMedian,
		AuthorName:       w.BookAuthor,
		CoverURL:         w.Cover,
	}
	if b.AuthorName == nil && len(w.AuthorNames) > 0 {
		name := w.AuthorNames[0]
		b.AuthorName = &name
	}
	if b.CoverURL == nil {
		b.CoverURL = w.SmallCoverURL
	}
	return b
}

func (b *BookSummary) UnmarshalJSON(data []byte) error {
	var w bookWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*b = w.summary()
	return nil
}

func (b BookSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(bookWire{
		WorkID:           b.WorkID,
		Title:            b.Title,
		BookAuthor:       b.AuthorName,
		FirstPublishYear: b.FirstPublishYear,
		PageCountMedian:  b.PageCountMedian,
		Cover:            b.CoverURL,
	})
}

// Author returns the author name or "Unknown Author".
func (b BookSummary) Author() string {
	if b.AuthorName == nil || *b.AuthorName == "" {
		return "Unknown Author"
	}
	return *b.AuthorName
}

// BookDetails is a summary plus the long description.
type BookDetails struct {
	BookSummary
	Description *string
}

func (d *BookDetails) UnmarshalJSON(data []byte) error {
	var w bookWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	d.BookSummary = w.summary()
	d.Description = w.Description
	return nil
}

// LibraryEntry is a book in the user's library with its reading status.
type LibraryEntry struct {
	ID string
	BookSummary
	Status Status
}

func (e *LibraryEntry) UnmarshalJSON(data []byte) error {
	var w bookWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	e.ID = w.ID
	e.BookSummary = w.summary()
	e.Status = w.Status
	return nil
}

// FilterByStatus returns the entries carrying status, preserving order.
func FilterByStatus(entries []LibraryEntry, status Status) []LibraryEntry {
	out := make([]LibraryEntry, 0, len(entries))
	for _, e := range entries {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out
}
