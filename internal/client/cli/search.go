package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/readtrack/internal/client/client"
	"github.com/dmitrijs2005/readtrack/internal/client/search"
)

// Search is the live search screen. Every line replaces the search text;
// results are printed when the debounced query completes.
func (a *App) Search(ctx context.Context) error {
	a.search.Show()
	defer a.search.Hide()

	a.println(heading("Search") + " " + muted("type to search, empty line clears, :list shows results, :open N opens one, :q leaves"))
	for {
		a.print("search> ")
		line, err := readLine(a.reader)
		if err != nil {
			return nil
		}

		switch {
		case line == ":q":
			return nil

		case line == ":list":
			a.printResults(strings.TrimSpace(a.search.Text()), a.search.Results())

		case strings.HasPrefix(line, ":open"):
			res := a.search.Results()
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, ":open")))
			if err != nil || n < 1 || n > len(res) {
				a.println(notice("Usage: :open N, where N is a result number"))
				continue
			}
			a.search.Hide()
			return a.Details(ctx, res[n-1].WorkID, false)

		case strings.HasPrefix(line, ":"):
			a.println(notice("Unknown search command: " + line))

		default:
			a.search.Change(line)
		}
	}
}

func (a *App) showSearchUpdate(u search.Update) {
	switch {
	case u.Err != nil:
		a.println(notice(client.MessageOr(u.Err, "Search failed")))
	case u.Query == "":
		a.println(muted("(cleared)"))
	default:
		a.printResults(u.Query, u.Results)
	}
}
