package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	currentView() View
	ShowLogin()
	ShowRegister()
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, idArg string) error
	Update(ctx context.Context, idArg string) error
	Delete(ctx context.Context, idArg string) error
	Stats(ctx context.Context) error
	WhoAmI() error
	Logout(ctx context.Context) error
}

// runREPL starts a read–eval–print loop dispatching on the active view, so
// the three views stay mutually exclusive: a command outside its view is an
// unknown command.
//
// Prompt & Commands
//
//	Login view:
//	  - help            — show available commands
//	  - login           — authenticate
//	  - register        — switch to the registration view
//	  - exit | quit     — leave the program
//
//	Register view:
//	  - help            — show available commands
//	  - signup          — create an account (auto-login follows)
//	  - login           — switch back to the login view
//	  - exit | quit     — leave the program
//
//	Authenticated view:
//	  - help            — show available commands
//	  - l | list        — list users
//	  - show <id>       — show a single user
//	  - update <id>     — update a user (admin)
//	  - delete <id>     — delete a user (admin)
//	  - stats           — cache-layer diagnostics (admin)
//	  - whoami          — show the current session
//	  - logout          — log out
//	  - exit | quit     — leave the program
//
// Any errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("um %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		switch a.currentView() {
		case ViewLogin:
			dispatchLogin(ctx, a, cmd)
		case ViewRegister:
			dispatchRegister(ctx, a, cmd)
		case ViewAuthenticated:
			dispatchAuthenticated(ctx, a, cmd, args)
		}
	}
}

func dispatchLogin(ctx context.Context, a execIface, cmd string) {
	switch cmd {
	case "help":
		printlnFn("Available commands: login, register, exit")
	case "login":
		_ = a.Login(ctx)
	case "register":
		a.ShowRegister()
	default:
		printlnFn("Unknown command:", cmd)
	}
}

func dispatchRegister(ctx context.Context, a execIface, cmd string) {
	switch cmd {
	case "help":
		printlnFn("Available commands: signup, login, exit")
	case "signup":
		_ = a.Signup(ctx)
	case "login":
		a.ShowLogin()
	default:
		printlnFn("Unknown command:", cmd)
	}
}

func dispatchAuthenticated(ctx context.Context, a execIface, cmd string, args []string) {
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}

	switch cmd {
	case "help":
		printlnFn("Available commands: (l)ist, show <id>, update <id>, delete <id>, stats, whoami, logout, exit")
	case "l", "list":
		_ = a.List(ctx)
	case "show":
		if arg == "" {
			printlnFn("Usage: show <id>")
			return
		}
		_ = a.Show(ctx, arg)
	case "update":
		if arg == "" {
			printlnFn("Usage: update <id>")
			return
		}
		_ = a.Update(ctx, arg)
	case "delete":
		if arg == "" {
			printlnFn("Usage: delete <id>")
			return
		}
		_ = a.Delete(ctx, arg)
	case "stats":
		_ = a.Stats(ctx)
	case "whoami":
		_ = a.WhoAmI()
	case "logout":
		_ = a.Logout(ctx)
	default:
		printlnFn("Unknown command:", cmd)
	}
}
