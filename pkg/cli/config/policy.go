package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/quitswarm/quitswarm/pkg/domain/model/config"
	"github.com/urfave/cli/v3"
)

// Policy holds the CLI flag for loading policy constants from a TOML file
type Policy struct {
	path string
}

// Flags returns CLI flags for policy configuration
func (x *Policy) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "policy-file",
			Usage:       "TOML file overriding the built-in policy constants",
			Sources:     cli.EnvVars("QUITSWARM_POLICY_FILE"),
			Destination: &x.path,
		},
	}
}

// Configure loads the policy, applying the TOML file over the defaults
// when one is given.
func (x *Policy) Configure() (*domainConfig.Policy, error) {
	policy := domainConfig.DefaultPolicy()
	if x.path == "" {
		return policy, nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(x.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read policy file", goerr.V("path", x.path))
	}
	if err := toml.Unmarshal(data, policy); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML policy file", goerr.V("path", x.path))
	}
	if err := policy.Validate(); err != nil {
		return nil, goerr.Wrap(err, "policy validation failed", goerr.V("path", x.path))
	}
	return policy, nil
}
