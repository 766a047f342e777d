package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App satisfies it; tests
// provide a stub.
type execIface interface {
	isOpen() bool
	Create(ctx context.Context, name string) error
	Open(ctx context.Context, name string) error
	Save(ctx context.Context) error
	Close(ctx context.Context) error
}

// runREPL reads commands line by line from scanner and dispatches them to a
// until EOF, "exit" or "quit".
//
//	create <name>  create a database and make it current
//	open <name>    open a database and make it current
//	save           save the current database
//	close          save and close the current database
//	status         show the current database
//	help           list commands
//	exit | quit    leave the program
//
// Handlers report their own errors; the loop ignores them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("passwdm%s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isOpen() {
				printlnFn("Available commands: save, close, status, create <name>, open <name>, exit")
			} else {
				printlnFn("Available commands: create <name>, open <name>, status, exit")
			}

		case "create", "open":
			if len(args) != 1 {
				printlnFn(fmt.Sprintf("Usage: %s <name>", cmd))
				continue
			}
			if cmd == "create" {
				_ = a.Create(ctx, args[0])
			} else {
				_ = a.Open(ctx, args[0])
			}

		case "save":
			_ = a.Save(ctx)

		case "close":
			_ = a.Close(ctx)

		case "status":
			if s := statusFn(); s != "" {
				printlnFn("Current database:", strings.Trim(s, " ()"))
			} else {
				printlnFn("No database open")
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
