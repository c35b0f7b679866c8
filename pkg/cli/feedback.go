package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/quitswarm/quitswarm/pkg/cli/config"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
	"github.com/quitswarm/quitswarm/pkg/usecase"
	"github.com/quitswarm/quitswarm/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdFeedback() *cli.Command {
	var caseID string
	var outcomeStr string
	var repoCfg config.Repository
	var policyCfg config.Policy

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "case-id",
			Usage:       "ID of the case to resolve",
			Required:    true,
			Destination: &caseID,
		},
		&cli.StringFlag{
			Name:        "outcome",
			Usage:       "How it turned out (positive, negative or neutral)",
			Required:    true,
			Destination: &outcomeStr,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, policyCfg.Flags()...)

	return &cli.Command{
		Name:    "feedback",
		Aliases: []string{"f"},
		Usage:   "Record the outcome of a case and adapt agent weights",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			outcome, err := types.ParseOutcome(outcomeStr)
			if err != nil {
				return goerr.Wrap(err, "invalid --outcome value")
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
			weights, err := uc.SubmitFeedback(ctx, types.CaseID(caseID), outcome)
			if err != nil {
				return err
			}

			fmt.Printf("Recorded %s outcome for case %s\n", outcome, caseID)
			for _, w := range weights {
				fmt.Printf("  %-22s weight %.3f  accuracy %.2f (%d/%d)\n",
					w.AgentID, w.Weight, w.Scorecard.Accuracy(),
					w.Scorecard.AgreementCount, w.Scorecard.FeedbackCount)
			}
			return nil
		},
	}
}
