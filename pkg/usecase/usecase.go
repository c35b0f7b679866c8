package usecase

import (
	"github.com/quitswarm/quitswarm/pkg/agent"
	"github.com/quitswarm/quitswarm/pkg/domain/interfaces"
	"github.com/quitswarm/quitswarm/pkg/domain/model/config"
)

// UseCases wires the decision engine: the agent registry, the policy
// constants and the durable swarm memory.
type UseCases struct {
	repo     interfaces.Repository
	registry *agent.Registry
	policy   *config.Policy
}

type Option func(*UseCases)

// WithPolicy overrides the default policy constants
func WithPolicy(policy *config.Policy) Option {
	return func(uc *UseCases) {
		uc.policy = policy
	}
}

// WithRegistry overrides the default agent registry
func WithRegistry(registry *agent.Registry) Option {
	return func(uc *UseCases) {
		uc.registry = registry
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:     repo,
		registry: agent.Default(),
		policy:   config.DefaultPolicy(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Policy returns the policy constants in effect
func (uc *UseCases) Policy() *config.Policy {
	return uc.policy
}
