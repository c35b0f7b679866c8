package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/quitswarm/quitswarm/pkg/domain/interfaces"
	"github.com/quitswarm/quitswarm/pkg/repository/firestore"
	"github.com/quitswarm/quitswarm/pkg/repository/local"
	"github.com/quitswarm/quitswarm/pkg/repository/memory"
	"github.com/quitswarm/quitswarm/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend    string
	memoryPath string
	projectID  string
	databaseID string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Repository backend type (local, memory or firestore)",
			Value:       "local",
			Sources:     cli.EnvVars("QUITSWARM_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "memory-path",
			Usage:       "Path of the JSON memory document (local backend)",
			Sources:     cli.EnvVars("QUITSWARM_MEMORY_PATH"),
			Destination: &r.memoryPath,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Sources:     cli.EnvVars("QUITSWARM_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Sources:     cli.EnvVars("QUITSWARM_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
	}
}

// Backend returns the configured backend type
func (r *Repository) Backend() string {
	return r.backend
}

// MemoryPath returns the JSON document path, falling back to the default
// location under the user's home directory.
func (r *Repository) MemoryPath() (string, error) {
	if r.memoryPath != "" {
		return r.memoryPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve home directory for memory document")
	}
	return filepath.Join(home, ".quitswarm", "memory.json"), nil
}

// Configure initializes and returns a repository based on the configured backend.
// The caller is responsible for calling Close() on the returned repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch r.backend {
	case "local":
		path, err := r.MemoryPath()
		if err != nil {
			return nil, err
		}
		repo, err := local.New(ctx, path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize local repository")
		}
		logging.Default().Info("Using local JSON repository", "path", path)
		return repo, nil

	case "memory":
		logging.Default().Info("Using in-memory repository (development mode)")
		return memory.New(), nil

	case "firestore":
		if r.projectID == "" {
			return nil, goerr.New("firestore-project-id is required when using firestore backend")
		}
		repo, err := firestore.New(ctx, r.projectID, r.databaseID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore repository")
		}
		logging.Default().Info("Using Firestore repository",
			"project_id", r.projectID,
			"database_id", r.databaseID,
		)
		return repo, nil

	default:
		return nil, goerr.New("invalid repository backend", goerr.V("backend", r.backend))
	}
}
