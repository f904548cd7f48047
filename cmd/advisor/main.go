package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

var version = "dev"

// errReported means the command already printed its failure.
var errReported = errors.New("reported")

func main() {
	// Existing environment variables win over .env; a missing file is fine.
	_ = godotenv.Load()

	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, parser := newParser()

	if _, err := parser.ParseArgs(args); err != nil {
		var ferr *flags.Error
		switch {
		case errors.As(err, &ferr) && ferr.Type == flags.ErrHelp:
			fmt.Fprintln(os.Stdout, err)
			return 0
		case errors.Is(err, errReported):
			return 1
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.Version {
		fmt.Println(version)
		return 0
	}

	// No sub-command: open the terminal UI.
	if parser.Active == nil {
		if err := opts.TUI.Execute(nil); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}
	return 0
}

func newParser() (*Options, *flags.Parser) {
	opts := &Options{}
	opts.Init()
	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.SubcommandsOptional = true
	return opts, parser
}
