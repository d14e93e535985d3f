package play

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/rocketscienceinc/tresenlinea/cli"
)

type Command struct {
	color bool
}

func (*Command) Name() string     { return "play" }
func (*Command) Synopsis() string { return "Play from the command line" }
func (*Command) Usage() string {
	return `play

Two players share the terminal. Type 1-9 to mark a cell,
n for a new round, r to reset the scores and q to quit.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.BoolVar(&c.color, "color", true, "render marks with terminal colors")
}

func (c *Command) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	game := cli.New(os.Stdout, os.Stdin, c.color)

	scores, err := game.Play()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stdout, "\nfinal score: X=%d O=%d ties=%d\n", scores.X, scores.O, scores.Ties)

	return subcommands.ExitSuccess
}
