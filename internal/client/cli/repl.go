package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

var errUnknownCommand = errors.New("unknown command")

const helpText = `Invoice:   show | print | new | edit | additem | addmenu | edititem <n> | rmitem <n>
           tax <rate> | discount <amount> | status <DRAFT|PAID|PENDING> | notes
Assistant: ai
Catalog:   menu | addproduct | rmproduct <n> | importmenu [file] | profile
Export:    save | savedir [folder] | drive | upload | sheet | share | history
           exit | quit`

// execIface is the command surface the REPL drives. The real App satisfies
// it; tests provide a lightweight stub.
type execIface interface {
	Dispatch(ctx context.Context, cmd string, args []string) error
}

// runREPL reads commands from reader until EOF, "exit"/"quit" or ctx is
// done. The first token is the command and the rest are its arguments.
// Handler errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printFn(fmt.Sprintf("cake %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			printlnFn()
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help", "?":
			printlnFn(helpText)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			err := a.Dispatch(ctx, cmd, args)
			switch {
			case errors.Is(err, errUnknownCommand):
				printlnFn("Unknown command:", cmd, "(type 'help')")
			case err != nil:
				printlnFn("error:", err)
			}
		}
	}
}
