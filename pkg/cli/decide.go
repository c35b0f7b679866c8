package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/quitswarm/quitswarm/pkg/cli/config"
	"github.com/quitswarm/quitswarm/pkg/domain/model"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
	"github.com/quitswarm/quitswarm/pkg/usecase"
	"github.com/quitswarm/quitswarm/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdDecide() *cli.Command {
	var input string
	var pretty bool
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
		&cli.BoolFlag{
			Name:        "pretty",
			Usage:       "Human readable output instead of JSON",
			Destination: &pretty,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, policyCfg.Flags()...)

	return &cli.Command{
		Name:    "decide",
		Aliases: []string{"d"},
		Usage:   "Run the swarm over a profile and record the case",
		Flags:   flags,
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
			decision, err := uc.Decide(ctx, profile)
			if err != nil {
				return err
			}

			if pretty {
				printDecision(decision)
				return nil
			}
			return printJSON(decision)
		},
	}
}

func printDecision(decision *model.Decision) {
	record := decision.Case

	rec := color.New(color.FgYellow, color.Bold)
	switch record.Recommendation {
	case types.RecommendationQuit:
		rec = color.New(color.FgGreen, color.Bold)
	case types.RecommendationStay:
		rec = color.New(color.FgRed, color.Bold)
	}

	fmt.Printf("Case:           %s\n", record.ID)
	fmt.Printf("Score:          %.1f / 100\n", record.AggregateScore)
	fmt.Printf("Recommendation: %s\n", rec.Sprint(record.Recommendation))
	fmt.Printf("Quit window:    %s\n", record.QuitWindow)

	fmt.Println("\nSignals:")
	for _, signal := range record.Signals {
		fmt.Printf("  %-22s %5.1f  %s\n", signal.AgentID, signal.Score, signal.Stance)
	}

	if len(record.RedFlags) > 0 {
		color.Red("\nRed flags:")
		for _, flag := range record.RedFlags {
			fmt.Printf("  - %s\n", flag)
		}
	}

	if len(record.ActionPlan) > 0 {
		fmt.Println("\nAction plan:")
		for _, item := range record.ActionPlan {
			fmt.Printf("  [%s %.0f] %s\n", item.AgentID, item.Score, item.Step)
		}
	}

	if len(decision.SimilarCases) > 0 {
		fmt.Println("\nSimilar cases:")
		for _, similar := range decision.SimilarCases {
			outcome := similar.Outcome.String()
			if outcome == "" {
				outcome = "unresolved"
			}
			fmt.Printf("  %s  similarity %.2f  %s (%s)\n",
				similar.CaseID, similar.Similarity, similar.Recommendation, outcome)
		}
	}
}
