package watch

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tresenlinea/cli"
	"github.com/rocketscienceinc/tresenlinea/cmd/internal/opt"
	"github.com/rocketscienceinc/tresenlinea/internal/repository/storage"
	redistransport "github.com/rocketscienceinc/tresenlinea/internal/transport/redis"
)

type Command struct {
	config  opt.Config
	channel string
}

func (*Command) Name() string     { return "watch" }
func (*Command) Synopsis() string { return "Print rounds as they conclude" }
func (*Command) Usage() string {
	return `watch [-config config.yml] [-channel name]

Subscribe to the Redis channel the server publishes concluded rounds to.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	c.config.AddFlags(flags)
	flags.StringVar(&c.channel, "channel", "", "override the configured channel")
}

func (c *Command) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	conf, err := c.config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	logger := opt.NewLogger(conf.LogLevel).With("component", "watch")

	channel := conf.Redis.Channel
	if c.channel != "" {
		channel = c.channel
	}

	client, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		logger.Error("could not connect to redis", "error", err)
		return subcommands.ExitFailure
	}
	defer client.Close()

	events, err := redistransport.Subscribe(ctx, client, channel)
	if err != nil {
		logger.Error("could not subscribe", "channel", channel, "error", err)
		return subcommands.ExitFailure
	}

	logger.Info("watching rounds", "channel", channel)

	output := termenv.NewOutput(os.Stdout)
	for event := range events {
		fmt.Fprintf(os.Stdout, "\nsession %s\n", event.SessionID)
		cli.RenderSession(output, os.Stdout, event.State(), event.Scores)
	}

	return subcommands.ExitSuccess
}
