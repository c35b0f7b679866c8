package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/quitswarm/quitswarm/pkg/cli/config"
	"github.com/quitswarm/quitswarm/pkg/usecase"
	"github.com/quitswarm/quitswarm/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdSimilar() *cli.Command {
	var input string
	var limit int64
	var repoCfg config.Repository
	var policyCfg config.Policy

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Profile JSON file, or - for stdin",
			Value:       "-",
			Sources:     cli.EnvVars("QUITSWARM_INPUT"),
			Destination: &input,
		},
		&cli.IntFlag{
			Name:        "limit",
			Aliases:     []string{"k"},
			Usage:       "Maximum number of similar cases to return",
			Value:       4,
			Destination: &limit,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, policyCfg.Flags()...)

	return &cli.Command{
		Name:  "similar",
		Usage: "Find historical cases resembling a profile",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			profile, err := loadProfile(input)
			if err != nil {
				return err
			}

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
			similar, err := uc.FindSimilar(ctx, profile, int(limit))
			if err != nil {
				return err
			}

			return printJSON(similar)
		},
	}
}
