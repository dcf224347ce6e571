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
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Go(ctx context.Context, path string) error
	Show(ctx context.Context) error
	Refresh(ctx context.Context) error
	Onboard(ctx context.Context, args []string) error
	Period(ctx context.Context, args []string) error
	Wellness(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error
	Notifications(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
}

const (
	helpAnonymous = "Available commands: login, signup, exit"
	helpSignedIn  = "Available commands: go <page>, show, refresh, onboard, period, wellness, profile, notif, export, logout, exit\n" +
		"Pages: dashboard, periods, analytics, wellness, profile, notifications, onboarding"
)

// runREPL starts a simple read–eval–print loop for the RedDot CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the session status and the current page (from statusFn):
//
//	Not logged in:
//	  - help              show available commands
//	  - signup            create an account, then onboarding
//	  - login             authenticate
//	  - exit | quit       leave the program
//
//	Logged in:
//	  - go <page>         open a page (dashboard, periods, analytics, ...)
//	  - show              wait for the page to load and print it
//	  - refresh           re-fetch the page data
//	  - onboard ...       onboarding wizard: set, add, next, back, submit
//	  - period ...        period log: new, set, notes, save, delete
//	  - wellness ...      wellness log: set, save, tip
//	  - profile ...       profile: edit, set, save
//	  - notif ...         notifications: read <id>, readall
//	  - export [dir]      write analytics charts as PNG
//	  - logout            log out
//
// Prompts read from the same reader as the loop, so scripted input works.
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("reddot %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "signup", "register":
			cmdErr = a.Signup(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "go", "cd":
			if len(args) == 0 {
				printlnFn("Usage: go <page>")
				continue
			}
			cmdErr = a.Go(ctx, args[0])

		case "show", "s":
			cmdErr = a.Show(ctx)

		case "refresh", "r":
			cmdErr = a.Refresh(ctx)

		case "onboard":
			cmdErr = a.Onboard(ctx, args)

		case "period", "periods":
			cmdErr = a.Period(ctx, args)

		case "wellness":
			cmdErr = a.Wellness(ctx, args)

		case "profile":
			cmdErr = a.Profile(ctx, args)

		case "notif", "notifications":
			cmdErr = a.Notifications(ctx, args)

		case "export":
			cmdErr = a.Export(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
		if err != nil {
			return
		}
	}
}
