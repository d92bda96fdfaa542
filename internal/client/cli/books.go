package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/readtrack/internal/client/client"
	"github.com/dmitrijs2005/readtrack/internal/client/library"
	"github.com/dmitrijs2005/readtrack/internal/client/models"
)

// descriptionLimit is how many characters of a description are shown
// before "read more".
const descriptionLimit = 300

// Home shows the "Currently reading" and "To be read" shelves.
func (a *App) Home(ctx context.Context) error {
	if err := a.books.RefreshLibrary(ctx); err != nil {
		a.println(notice(client.MessageOr(err, "Could not load your library")))
		return err
	}

	sh := a.books.Shelves()
	a.printShelf("Currently reading", sh.Reading, "Nothing in progress. Use 'search' or 'scan' to find a book.")
	a.printShelf("To be read", sh.ToRead, "Your to-read list is empty.")
	return nil
}

func (a *App) printShelf(title string, entries []models.LibraryEntry, empty string) {
	a.println(heading(fmt.Sprintf("%s (%d)", title, len(entries))))
	if len(entries) == 0 {
		a.println(muted("  " + empty))
		return
	}
	for _, e := range entries {
		a.println("  " + summaryLine(e.BookSummary))
	}
}

// Find runs a single search and lists the results.
func (a *App) Find(ctx context.Context, query string) error {
	res, err := a.books.Search(ctx, query)
	if err != nil {
		a.println(notice(client.MessageOr(err, "Search failed")))
		return err
	}
	a.printResults(query, res)
	return nil
}

func (a *App) printResults(query string, res []models.BookSummary) {
	if len(res) == 0 {
		a.println(muted(fmt.Sprintf("No results for %q", query)))
		return
	}
	a.println(heading(fmt.Sprintf("%d results for %q", len(res), query)))
	a.printBooks(res)
}

// Details fetches and prints one work. Long descriptions are cut unless
// full is set.
func (a *App) Details(ctx context.Context, workID string, full bool) error {
	d, err := a.books.Details(ctx, workID)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			a.println(notice("Book not found: " + workID))
		} else {
			a.println(notice(client.MessageOr(err, "Could not load book details")))
		}
		return err
	}
	a.printDetails(d, full)
	return nil
}

func (a *App) printDetails(d models.BookDetails, full bool) {
	a.println(heading(d.Title))
	a.println("by " + d.Author())
	a.println(fmt.Sprintf("Published: %s | Pages: %s", intOrNA(d.FirstPublishYear), intOrNA(d.PageCountMedian)))
	if st, ok := a.books.StatusOf(d.WorkID); ok {
		a.println("Status: " + badge(st.String()))
	}
	if d.CoverURL != nil && *d.CoverURL != "" {
		a.println(muted("Cover: " + *d.CoverURL))
	}
	if d.Description != nil && *d.Description != "" {
		a.println("")
		if full {
			a.println(*d.Description)
		} else {
			text, cut := truncate(*d.Description, descriptionLimit)
			a.println(text)
			if cut {
				a.println(muted(fmt.Sprintf("Read more: details %s full", d.WorkID)))
			}
		}
	}
	a.println(muted(fmt.Sprintf("Set status: status %s <%s>", d.WorkID, statusChoices())))
}

// Library shows the entries with one status, fetching the list first.
// An empty filter means library.DefaultFilter.
func (a *App) Library(ctx context.Context, filter string) error {
	status := library.DefaultFilter
	if strings.TrimSpace(filter) != "" {
		st, err := models.ParseStatus(filter)
		if err != nil {
			a.println(notice("Unknown status. Choose one of: " + statusChoices()))
			return err
		}
		status = st
	}

	if err := a.books.RefreshLibrary(ctx); err != nil {
		a.println(notice(client.MessageOr(err, "Could not load your library")))
		return err
	}

	entries := a.books.Library(status)
	a.println(heading(fmt.Sprintf("Library: %s (%d)", status, len(entries))))
	if len(entries) == 0 {
		a.println(muted(fmt.Sprintf("No books marked %q yet.", status)))
	}
	for i, e := range entries {
		a.println(fmt.Sprintf("%2d. %s", i+1, summaryLine(e.BookSummary)))
	}
	a.println(muted("Filters: " + statusChoices()))
	return nil
}

// SetStatus changes the reading status of a work and reloads the library.
func (a *App) SetStatus(ctx context.Context, workID, status string) error {
	st, err := models.ParseStatus(status)
	if err != nil {
		a.println(notice("Unknown status. Choose one of: " + statusChoices()))
		return err
	}

	err = a.books.SetStatus(ctx, workID, st)
	if err != nil && !errors.Is(err, library.ErrRefresh) {
		a.println(notice(client.MessageOr(err, "Could not update status")))
		return err
	}
	a.println(success(fmt.Sprintf("Marked %s as %s", models.NormalizeWorkID(workID), st)))
	if err != nil {
		a.println(notice("Your library could not be reloaded. Try \"library\" again later."))
	}
	return err
}

func summaryLine(b models.BookSummary) string {
	s := fmt.Sprintf("%s by %s", b.Title, b.Author())
	if b.FirstPublishYear != nil {
		s += fmt.Sprintf(" (%d)", *b.FirstPublishYear)
	}
	if b.WorkID != "" {
		s += " " + muted("["+b.WorkID+"]")
	}
	return s
}

func intOrNA(v *int) string {
	if v == nil {
		return "N/A"
	}
	return strconv.Itoa(*v)
}

// truncate cuts s to at most n runes and reports whether it did.
func truncate(s string, n int) (string, bool) {
	r := []rune(s)
	if len(r) <= n {
		return s, false
	}
	return string(r[:n]) + "...", true
}

func statusChoices() string {
	labels := make([]string, 0, len(models.Statuses()))
	for _, st := range models.Statuses() {
		labels = append(labels, st.String())
	}
	return strings.Join(labels, ", ")
}
