package serve

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/rocketscienceinc/tresenlinea/cmd/internal/opt"
	app "github.com/rocketscienceinc/tresenlinea/internal"
)

type Command struct {
	config opt.Config
}

func (*Command) Name() string     { return "serve" }
func (*Command) Synopsis() string { return "Serve game sessions over HTTP and WebSocket" }
func (*Command) Usage() string {
	return `serve [-config config.yml] [-log-level level]

Run the REST API and the WebSocket server.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	c.config.AddFlags(flags)
}

func (c *Command) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	conf, err := c.config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	logger := opt.NewLogger(conf.LogLevel)

	if err = app.RunApp(ctx, logger, conf); err != nil {
		logger.Error("app run failed", "error", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
