package cli

import (
	"bufio"
	"context"
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
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	SetDone(ctx context.Context, args []string, done bool) error
	Delete(ctx context.Context, args []string) error
	Count(ctx context.Context) error
}

// runREPL reads commands line by line and dispatches them to a. It exits on
// EOF or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help | signup | login | exit
//
//	Logged in:
//	  - help | (l)ist | add | edit <id> | done <id> | undone <id>
//	  - delete <id> | count | logout | exit
//
// Errors returned by command handlers are ignored here; handlers report
// them to the user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "ff %s> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if !a.isLoggedIn() {
			switch cmd {
			case "help":
				fmt.Fprintln(w, "Available commands: signup, login, exit")
				continue
			case "signup", "register":
				_ = a.Register(ctx)
				continue
			case "login":
				_ = a.Login(ctx)
				continue
			case "exit", "quit":
				fmt.Fprintln(w, "Bye!")
				return
			default:
				fmt.Fprintln(w, "Please signup or login first (type 'help').")
				continue
			}
		}

		switch cmd {
		case "help":
			fmt.Fprintln(w, "Available commands: (l)ist, add, edit <id>, done <id>, undone <id>, delete <id>, count, logout, exit")
		case "l", "list":
			_ = a.List(ctx)
		case "add":
			_ = a.Add(ctx)
		case "edit":
			_ = a.Edit(ctx, args)
		case "done":
			_ = a.SetDone(ctx, args, true)
		case "undone":
			_ = a.SetDone(ctx, args, false)
		case "delete", "rm":
			_ = a.Delete(ctx, args)
		case "count":
			_ = a.Count(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
