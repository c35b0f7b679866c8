package cli

import (
	"context"

	"github.com/quitswarm/quitswarm/pkg/cli/config"
	"github.com/quitswarm/quitswarm/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, args []string, version string) error {
	var loggerCfg config.Logger
	var closer func()

	app := &cli.Command{
		Name:    "quitswarm",
		Usage:   "Swarm decision engine for should-I-quit-my-job calls",
		Version: version,
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closer = f

			logging.Default().Debug("Starting quitswarm",
				"log_level", loggerCfg.Level(),
				"log_format", loggerCfg.Format(),
			)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if closer != nil {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdDecide(),
			cmdFeedback(),
			cmdSimilar(),
			cmdWeights(),
			cmdServe(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}
