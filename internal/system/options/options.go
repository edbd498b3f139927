// Released under an MIT license. See LICENSE.

// Package options parses ply's command line.
package options

import (
	"os"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
)

// Version is reported by -v.
const Version = "ply 0.1.0"

//nolint:gochecknoglobals
var (
	args        []string
	command     string
	config      string
	interactive bool
	quiet       bool
	script      string
	usage       = `ply

Usage:
  ply [-q] [--config=FILE] SCRIPT [ARGUMENTS...]
  ply [-q] [--config=FILE] -c COMMAND [ARGUMENTS...]
  ply [-iq] [--config=FILE]
  ply -h
  ply -v

Arguments:
  ARGUMENTS  Bound, as strings, to *args*.
  SCRIPT     Path to a ply script.

Options:
  -c, --command=COMMAND  Evaluate the specified code.
  --config=FILE          Read settings from FILE.
  -i, --interactive      Force interactive mode.
  -q, --quiet            Suppress redefinition warnings.
  -h, --help             Display this help.
  -v, --version          Print ply version.

If ply's stdin is a TTY and no script or command is given, or -i is given,
ply starts an interactive session. Otherwise it reads code from stdin.
`
)

// Args returns the script arguments.
func Args() []string {
	return args
}

// Command returns the code passed with -c, if any.
func Command() string {
	return command
}

// Config returns the path passed with --config, if any.
func Config() string {
	return config
}

// Interactive returns true if ply should run the REPL.
func Interactive() bool {
	return interactive
}

// Parse parses the process's command line. It exits for -h and -v.
func Parse() {
	parse(os.Args[1:], isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()))
}

// Quiet returns true if redefinition warnings are suppressed.
func Quiet() bool {
	return quiet
}

// Script returns the path of the script to run, if any.
func Script() string {
	return script
}

func parse(argv []string, terminal bool) {
	opts, err := docopt.ParseArgs(usage, argv, Version)
	if err != nil {
		// Error in the usage doc. This should never happen.
		panic(err.Error())
	}

	command, _ = opts.String("--command")
	config, _ = opts.String("--config")
	script, _ = opts.String("SCRIPT")
	quiet, _ = opts.Bool("--quiet")

	args, _ = opts["ARGUMENTS"].([]string)

	forced, _ := opts.Bool("--interactive")
	interactive = forced || (script == "" && command == "" && terminal)
}
