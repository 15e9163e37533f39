package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL reads commands line by line and dispatches them to a until the
// input is exhausted or the user types "exit" or "quit".
//
//	Not logged in:  help, register, login, status, exit | quit
//	Logged in:      help, status, logout, delete-account, exit | quit
//
// Errors returned by command handlers are ignored here; handlers print
// their own messages.
// The reader is shared with the command prompts, so it is read line by line
// without look-ahead buffering. Output goes to out, the same writer the
// command handlers use.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "gg%s> \n", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, "Available commands: status, logout, delete-account, exit")
			} else {
				fmt.Fprintln(out, "Available commands: register, login, status, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "status":
			_ = a.Status(ctx)

		case "logout":
			if !a.isLoggedIn() {
				fmt.Fprintln(out, "Not logged in")
				continue
			}
			_ = a.Logout(ctx)

		case "delete-account":
			if !a.isLoggedIn() {
				fmt.Fprintln(out, "Log in first to delete your account")
				continue
			}
			_ = a.DeleteAccount(ctx)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if ctx.Err() != nil {
			return
		}
	}
}
