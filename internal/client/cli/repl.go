package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, id string) error
	AddNote(ctx context.Context) error
	EditNote(ctx context.Context, id string) error
	DeleteNote(ctx context.Context, id string) error
	Export(ctx context.Context, save bool) error
}

// runREPL starts a simple read-eval-print loop for the GophNotes CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. Command prompts read from the same reader,
// so input typed ahead is not lost. The loop exits on EOF or when the user
// types "exit" or "quit".
//
//	Not logged in:
//	  - help                  show available commands
//	  - register | login      create an account / authenticate
//	  - exit | quit           leave the program
//
//	Logged in:
//	  - (l)ist | show <id>    browse notes
//	  - add | edit <id>       write notes
//	  - delete <id>           remove a note
//	  - export [save]         upload all notes, print a download link and
//	                          optionally keep a local copy
//	  - logout
//
// Handler errors are reported to the user and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gn %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, show <id>, add, edit <id>, delete <id>, export [save], logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			report(a.Register(ctx))

		case "login":
			report(a.Login(ctx))

		case "logout":
			report(a.Logout(ctx))

		case "l", "list":
			report(a.List(ctx))

		case "show":
			if id, ok := needID(cmd, args); ok {
				report(a.Show(ctx, id))
			}

		case "add":
			report(a.AddNote(ctx))

		case "edit":
			if id, ok := needID(cmd, args); ok {
				report(a.EditNote(ctx, id))
			}

		case "delete":
			if id, ok := needID(cmd, args); ok {
				report(a.DeleteNote(ctx, id))
			}

		case "export":
			switch {
			case len(args) == 0:
				report(a.Export(ctx, false))
			case len(args) == 1 && args[0] == "save":
				report(a.Export(ctx, true))
			default:
				printlnFn("Usage: export [save]")
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func needID(cmd string, args []string) (string, bool) {
	if len(args) != 1 {
		printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
		return "", false
	}
	return args[0], true
}

// report prints err in user terms. A nil err prints nothing.
func report(err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, client.ErrNotLoggedIn):
		printlnFn("Please login first")
	case errors.Is(err, client.ErrUnavailable):
		printlnFn("Server unavailable, try again later")
	case errors.Is(err, client.ErrUnauthorized):
		printlnFn("Error:", err.Error(), "(login again if your session has expired)")
	default:
		printlnFn("Error:", err.Error())
	}
}
