package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/quitswarm/quitswarm/pkg/cli/config"
	"github.com/quitswarm/quitswarm/pkg/usecase"
	"github.com/quitswarm/quitswarm/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdWeights() *cli.Command {
	var asJSON bool
	var repoCfg config.Repository
	var policyCfg config.Policy

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "JSON output instead of a table",
			Destination: &asJSON,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, policyCfg.Flags()...)

	return &cli.Command{
		Name:    "weights",
		Aliases: []string{"w"},
		Usage:   "Show the current weight and scorecard of every agent",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			policy, err := policyCfg.Configure()
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			uc := usecase.New(repo, usecase.WithPolicy(policy))
			weights, err := uc.ListWeights(ctx)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(weights)
			}

			color.New(color.Bold).Printf("%-22s %8s %10s %10s\n", "AGENT", "WEIGHT", "FEEDBACK", "ACCURACY")
			for _, w := range weights {
				fmt.Printf("%-22s %8.3f %10d %9.0f%%\n",
					w.AgentID, w.Weight, w.Scorecard.FeedbackCount, w.Scorecard.Accuracy()*100)
			}
			return nil
		},
	}
}
