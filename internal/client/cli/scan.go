package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/readtrack/internal/client/client"
	"github.com/dmitrijs2005/readtrack/internal/client/scan"
)

// Scan reads barcodes, one per line, as a handheld scanner types them.
// Entering the screen always starts a fresh scan.
func (a *App) Scan(ctx context.Context) error {
	a.resolver.Reset()

	a.println(heading("Scan") + " " + muted("scan or type an ISBN, :again scans another, :q leaves"))
	for {
		a.print("scan> ")
		line, err := readLine(a.reader)
		if err != nil {
			return nil
		}

		switch line = strings.TrimSpace(line); line {
		case "":
			continue
		case ":q":
			return nil
		case ":again":
			a.resolver.Reset()
			a.println("Ready to scan.")
			continue
		}

		out := a.resolver.Handle(ctx, line)
		switch out.Kind {
		case scan.Ignored:
			a.println(muted("A book was already found. Type :again to scan another."))
		case scan.Invalid:
			a.println(notice(out.Notice))
		case scan.Failed:
			a.println(notice(client.MessageOr(out.Err, out.Notice)))
		case scan.Resolved:
			a.printDetails(out.Book, false)
			a.println(muted("Type :again to scan another."))
		}
	}
}
