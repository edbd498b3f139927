// Released under an MIT license. See LICENSE.

// Package ui provides an interactive command-line interface for ply.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/interface/literal"
	"github.com/michaelmacinnis/ply/internal/reader"
	"github.com/michaelmacinnis/ply/internal/system/history"
	"github.com/peterh/liner"
)

const (
	continued = "...> "
	primary   = "ply> "
)

// Evaluator is the interface for things that want to process entered code.
type Evaluator interface {
	EvalString(ctx context.Context, name, text string) (cell.I, error)
	Names() []string
}

// A session accumulates lines until they form complete expressions and
// then evaluates them. Errors are reported and the session continues.
type session struct {
	e       Evaluator
	errs    io.Writer
	out     io.Writer
	pending []string
}

// Run launches the REPL. It returns when input ends.
func Run(e Evaluator, path string) error {
	cooked, err := liner.TerminalMode()
	if err != nil {
		return err
	}

	cli := liner.NewLiner()
	defer cli.Close()

	uncooked, err := liner.TerminalMode()
	if err != nil {
		return err
	}

	if err := history.Load(path, cli.ReadHistory); err != nil {
		fmt.Fprintln(os.Stderr, "history:", err)
	}

	cli.SetCtrlCAborts(true)
	cli.SetWordCompleter(completer(e))

	s := &session{e: e, errs: os.Stderr, out: os.Stdout}
	prompt := primary

	for {
		if err := uncooked.ApplyMode(); err != nil {
			return err
		}

		line, err := cli.Prompt(prompt)

		if merr := cooked.ApplyMode(); merr != nil {
			return merr
		}

		switch err {
		case nil:
			if strings.TrimSpace(line) != "" {
				cli.AppendHistory(line)
			}

			prompt = s.interrupted(line)

		case liner.ErrPromptAborted:
			s.reset()

			prompt = primary

		case io.EOF:
			fmt.Fprintln(os.Stdout)

			return history.Save(path, cli.WriteHistory)

		default:
			return err
		}
	}
}

// completer returns a word completer offering global names.
func completer(e Evaluator) liner.WordCompleter {
	return func(line string, pos int) (string, []string, string) {
		head, tail := line[:pos], line[pos:]

		start := strings.LastIndexAny(head, " \t()[]{}'`~@") + 1
		word := head[start:]

		var cs []string

		if word != "" {
			for _, name := range e.Names() {
				if strings.HasPrefix(name, word) {
					cs = append(cs, name)
				}
			}
		}

		sort.Strings(cs)

		return head[:start], cs, tail
	}
}

// feed adds a line of input and returns the prompt for the next one.
func (s *session) feed(ctx context.Context, line string) string {
	s.pending = append(s.pending, line)

	text := strings.Join(s.pending, "\n")
	if !reader.Complete(text) {
		return continued
	}

	s.reset()

	if strings.TrimSpace(text) == "" {
		return primary
	}

	v, err := s.e.EvalString(ctx, "repl", text)
	if err != nil {
		fmt.Fprintln(s.errs, "error:", err)

		return primary
	}

	fmt.Fprintln(s.out, literal.String(v))

	return primary
}

// interrupted feeds line with evaluation cancelled by an interrupt.
func (s *session) interrupted(line string) string {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return s.feed(ctx, line)
}

func (s *session) reset() {
	s.pending = nil
}
