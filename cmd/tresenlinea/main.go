package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/google/subcommands"

	"github.com/rocketscienceinc/tresenlinea/cmd/internal/play"
	"github.com/rocketscienceinc/tresenlinea/cmd/internal/serve"
	"github.com/rocketscienceinc/tresenlinea/cmd/internal/watch"
)

// newCommander - registers every command on a commander bound to the given flag set.
func newCommander(topLevelFlags *flag.FlagSet, name string) *subcommands.Commander {
	cdr := subcommands.NewCommander(topLevelFlags, name)

	cdr.Register(cdr.HelpCommand(), "")
	cdr.Register(cdr.FlagsCommand(), "")
	cdr.Register(cdr.CommandsCommand(), "")

	cdr.Register(&serve.Command{}, "")
	cdr.Register(&play.Command{}, "")
	cdr.Register(&watch.Command{}, "")

	return cdr
}

// main - is the entry point of the application. It registers the commands and runs the selected one.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	cdr := newCommander(flag.CommandLine, path.Base(os.Args[0]))

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	status := cdr.Execute(ctx)
	stop()

	os.Exit(int(status))
}
