package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/acarl005/stripansi"
	"github.com/cricklet/chessboard/internal/console"
	. "github.com/cricklet/chessboard/internal/helpers"
	"github.com/cricklet/chessboard/internal/session"
	"github.com/pkg/profile"
	"golang.org/x/term"
)

type Terminal struct {
	In          io.Reader
	Out         io.Writer
	Err         io.Writer
	Interactive bool
	Colored     bool
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "recover()", r)
			os.Exit(1)
		}
	}()

	t := Terminal{
		In:          os.Stdin,
		Out:         os.Stdout,
		Err:         os.Stderr,
		Interactive: term.IsTerminal(int(os.Stdin.Fd())),
		Colored:     term.IsTerminal(int(os.Stdout.Fd())),
	}
	if err := run(os.Args[1:], t); !IsNil(err) {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run returns instead of exiting so the profile is flushed on failure.
// Piped input stops at the first failing command.
func run(args []string, t Terminal) Error {
	flags := flag.NewFlagSet("console", flag.ContinueOnError)
	flags.SetOutput(t.Err)
	fen := flags.String("fen", "", "starting position (standard position when empty)")
	profilePath := flags.String("profile", "", "write a cpu profile into this directory")
	if err := flags.Parse(args); err != nil {
		return Wrap(err)
	}

	if *profilePath != "" {
		defer profile.Start(profile.ProfilePath(*profilePath), profile.Quiet).Stop()
	}

	s := session.NewSession(session.WithLogger(FuncLogger(func(message string) {
		fmt.Fprint(t.Err, message)
	})))
	if *fen != "" {
		if err := s.SetupPosition(session.Position{Fen: *fen}); !IsNil(err) {
			return err
		}
	}

	c := console.NewConsole(s)

	prompt := func() {
		if t.Interactive {
			fmt.Fprintf(t.Out, "%v> ", s.Player())
		}
	}

	scanner := bufio.NewScanner(t.In)

	prompt()
	for scanner.Scan() {
		input := scanner.Text()
		if input == "quit" {
			break
		}
		result, err := c.HandleInput(input)
		if !IsNil(err) {
			if !t.Interactive {
				return err
			}
			fmt.Fprintln(t.Err, "error:", err)
		}
		for _, v := range result {
			if !t.Colored {
				v = stripansi.Strip(v)
			}
			fmt.Fprintln(t.Out, v)
		}
		prompt()
	}

	return Wrap(scanner.Err())
}
