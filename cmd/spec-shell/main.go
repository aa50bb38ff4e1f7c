// Command spec-shell is an interactive console over the spec store, for
// poking at a document without wiring up an MCP client.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"go.uber.org/zap"

	"github.com/specview/specview/pkg/render"
	"github.com/specview/specview/pkg/spec"
)

const shellHelp = `Commands:
  load <file|url>          load a document, replacing the current one
  ops [query]              list operations, optionally filtered
  op <id | METHOD PATH>    show one operation
  headers <id> [status]    show response headers
  tags                     list tags
  meta                     show document info
  clear                    unload the document
  help                     this text
  exit                     leave the shell`

func main() {
	logger := zap.NewNop()
	store := spec.NewStore(logger)
	ctx := context.Background()

	if len(os.Args) > 1 {
		if err := store.Load(ctx, os.Args[1]); err != nil {
			fmt.Fprintln(os.Stderr, "load failed:", err)
			os.Exit(1)
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "spec> ",
		HistoryFile:     historyFile(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return
		}
		dispatch(ctx, store, line)
	}
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.spec_shell_history"
}

func dispatch(ctx context.Context, store *spec.Store, line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		fmt.Println(shellHelp)
	case "load":
		if len(args) != 1 {
			fmt.Println("usage: load <file|url>")
			return
		}
		if err := store.Load(ctx, args[0]); err != nil {
			fmt.Println("load failed:", err)
			return
		}
		meta, _ := store.GetMetadata()
		fmt.Printf("loaded %s %s (%d operations)\n",
			meta.Title, meta.Version, len(store.FindOperations("")))
	case "ops":
		requireLoaded(store, func() {
			query := strings.Join(args, " ")
			ops := store.FindOperations(query)
			if len(ops) == 0 {
				fmt.Println("no matches")
				return
			}
			for _, op := range ops {
				line := fmt.Sprintf("%-7s %s", op.Method, op.Path)
				if op.ID != "" {
					line += "  (" + op.ID + ")"
				}
				fmt.Println(line)
			}
		})
	case "op":
		requireLoaded(store, func() {
			op, ok := resolveArg(store, args)
			if !ok {
				return
			}
			fmt.Printf("%s %s\n", op.Method, op.Path)
			if op.ID != "" {
				fmt.Println("id:", op.ID)
			}
			if op.Summary != "" {
				fmt.Println("summary:", op.Summary)
			}
			if len(op.Tags) > 0 {
				fmt.Println("tags:", strings.Join(op.Tags, ", "))
			}
			if len(op.PathVars) > 0 {
				fmt.Println("path vars:", strings.Join(op.PathVars, ", "))
			}
		})
	case "headers":
		requireLoaded(store, func() {
			if len(args) == 0 {
				fmt.Println("usage: headers <operation-id> [status]")
				return
			}
			op, ok := resolveArg(store, args[:1])
			if !ok {
				return
			}
			status := ""
			if len(args) > 1 {
				status = args[1]
			}
			headers, err := store.GetHeaders(op, status)
			if err != nil {
				fmt.Println(err)
				return
			}
			for code, byName := range headers {
				fmt.Printf("status %s:\n", code)
				for name, header := range byName {
					fmt.Printf("  %s: %s\n", name, render.HeaderSchema(header))
				}
			}
		})
	case "tags":
		requireLoaded(store, func() {
			for _, tag := range store.Tags() {
				fmt.Println(tag)
			}
		})
	case "meta":
		requireLoaded(store, func() {
			meta, _ := store.GetMetadata()
			fmt.Printf("title: %s\nversion: %s\nsource: %s\n",
				meta.Title, meta.Version, store.Source())
		})
	case "clear":
		store.Clear()
		fmt.Println("cleared")
	default:
		fmt.Printf("unknown command %q; try help\n", cmd)
	}
}

func requireLoaded(store *spec.Store, fn func()) {
	if !store.HasSchema() {
		fmt.Println("no document loaded; use: load <file|url>")
		return
	}
	fn()
}

// resolveArg accepts either an operationId or "METHOD /path".
func resolveArg(store *spec.Store, args []string) (*spec.Operation, bool) {
	switch len(args) {
	case 1:
		op, ok := store.GetOperation(args[0])
		if !ok {
			fmt.Printf("operation %q not found\n", args[0])
		}
		return op, ok
	case 2:
		op, ok := store.GetOperationByMethodPath(args[0], args[1])
		if !ok {
			fmt.Printf("no operation for %s %s\n", strings.ToUpper(args[0]), args[1])
		}
		return op, ok
	default:
		fmt.Println("usage: op <id | METHOD PATH>")
		return nil, false
	}
}
