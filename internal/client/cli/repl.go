package cli

import (
	"bufio"
	"context"
	"strings"

	"github.com/dmitrijs2005/readtrack/internal/client/nav"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	state() nav.State
	print(args ...any)
	println(args ...any)
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Home(ctx context.Context) error
	Search(ctx context.Context) error
	Find(ctx context.Context, query string) error
	Scan(ctx context.Context) error
	Details(ctx context.Context, workID string, full bool) error
	Library(ctx context.Context, filter string) error
	SetStatus(ctx context.Context, workID, status string) error
	Profile(ctx context.Context) error
}

const (
	guestHelp = "Available commands: register, login, exit"
	userHelp  = "Available commands: home, search, find <query>, scan, details <workID> [full], " +
		"library [status], status <workID> <status>, profile, logout, exit"
)

var userCommands = map[string]bool{
	"home": true, "search": true, "find": true, "scan": true, "details": true,
	"library": true, "status": true, "profile": true, "logout": true,
}

// runREPL starts a read–eval–print loop over reader.
//
// The first token of a line is the command; the commands offered depend on
// the navigation state. While the session is still loading nothing but
// exit is accepted. The loop ends on EOF, on "exit"/"quit", or when ctx is
// done.
//
// Errors returned by command handlers are ignored here; handlers print
// their own notices.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader) {
	for ctx.Err() == nil {
		a.print(promptFn())
		line, err := readLine(reader)
		if err != nil {
			a.println()
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			a.println("Bye!")
			return
		}

		switch a.state() {
		case nav.Loading:
			a.println("Loading, please wait...")
		case nav.Unauthenticated:
			guestCommand(ctx, a, cmd)
		case nav.Authenticated:
			userCommand(ctx, a, cmd, args)
		}
	}
}

func guestCommand(ctx context.Context, a execIface, cmd string) {
	switch cmd {
	case "help":
		a.println(guestHelp)
	case "register":
		_ = a.Register(ctx)
	case "login":
		_ = a.Login(ctx)
	default:
		if userCommands[cmd] {
			a.println("Please log in first.")
			return
		}
		a.println("Unknown command:", cmd)
	}
}

func userCommand(ctx context.Context, a execIface, cmd string, args []string) {
	switch cmd {
	case "help":
		a.println(userHelp)

	case "home":
		_ = a.Home(ctx)

	case "search":
		_ = a.Search(ctx)

	case "find":
		if len(args) == 0 {
			a.println("Usage: find <query>")
			return
		}
		_ = a.Find(ctx, strings.Join(args, " "))

	case "scan":
		_ = a.Scan(ctx)

	case "details":
		if len(args) == 0 {
			a.println("Usage: details <workID> [full]")
			return
		}
		full := len(args) > 1 && args[1] == "full"
		_ = a.Details(ctx, args[0], full)

	case "library":
		_ = a.Library(ctx, strings.Join(args, " "))

	case "status":
		if len(args) < 2 {
			a.println("Usage: status <workID> <to-read|reading|finished|paused|did not finish>")
			return
		}
		_ = a.SetStatus(ctx, args[0], strings.Join(args[1:], " "))

	case "profile":
		_ = a.Profile(ctx)

	case "logout":
		_ = a.Logout(ctx)

	case "register", "login":
		a.println("Already logged in; logout first.")

	default:
		a.println("Unknown command:", cmd)
	}
}
