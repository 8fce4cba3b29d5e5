package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Open(ctx context.Context, path string) error
	Back(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	Edit(ctx context.Context) error
	Page(ctx context.Context, token string) error
	First(ctx context.Context) error
	Prev(ctx context.Context) error
	Next(ctx context.Context) error
	Last(ctx context.Context) error
	Refresh(ctx context.Context) error
	Show(ctx context.Context, id string) error
	CloseDetail(ctx context.Context) error
	Image(ctx context.Context, id string) error
}

// runREPL starts a simple read–eval–print loop for the Portal CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, when a form hits EOF, or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
//	Always:
//	  - help              show available commands
//	  - open <path>       go to a location (/, /auth, /information/2, /profile)
//	  - back              return to the previous location
//	  - exit | quit       leave the program
//
//	Not logged in:
//	  - login             show the login form
//
//	Logged in:
//	  - page [n]          go to catalog page n (default 1)
//	  - first | prev | next | last
//	  - refresh           reload the current page, bypassing the cache
//	  - show <id>         open a character from the current page
//	  - close             close the character view
//	  - image [id]        save a character image under ./download
//	  - profile | edit    view or edit the stored profile
//	  - logout
//
// Errors returned by handlers are printed; io.EOF from a form ends the loop.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(promptFn())
		line, err := reader.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd, arg := parts[0], ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: page [n], first, prev, next, last, refresh, show <id>, close, image [id], profile, edit, logout, open <path>, back, exit")
			} else {
				printlnFn("Available commands: login, open <path>, back, exit")
			}

		case "open":
			if arg == "" {
				printlnFn("Usage: open <path>")
				continue
			}
			cmdErr = a.Open(ctx, arg)

		case "back":
			cmdErr = a.Back(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "profile":
			cmdErr = a.Profile(ctx)

		case "edit":
			cmdErr = a.Edit(ctx)

		case "page", "p":
			cmdErr = a.Page(ctx, arg)

		case "first":
			cmdErr = a.First(ctx)

		case "prev":
			cmdErr = a.Prev(ctx)

		case "next", "n":
			cmdErr = a.Next(ctx)

		case "last":
			cmdErr = a.Last(ctx)

		case "refresh", "r":
			cmdErr = a.Refresh(ctx)

		case "show":
			if arg == "" {
				printlnFn("Usage: show <id>")
				continue
			}
			cmdErr = a.Show(ctx, arg)

		case "close":
			cmdErr = a.CloseDetail(ctx)

		case "image":
			cmdErr = a.Image(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			if errors.Is(cmdErr, io.EOF) {
				return
			}
			printlnFn("Error:", cmdErr)
		}
		if err != nil {
			return
		}
	}
}
