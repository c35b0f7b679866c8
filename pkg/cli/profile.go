package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/quitswarm/quitswarm/pkg/domain/model"
)

// loadProfile reads a profile JSON document from the given path, or from
// stdin when the path is "-".
func loadProfile(path string) (*model.Profile, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read profile from stdin")
		}
	} else {
		// #nosec G304 - path is expected to be provided by CLI argument
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read profile file", goerr.V("path", path))
		}
	}

	var profile model.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, goerr.Wrap(err, "failed to parse profile JSON", goerr.V("path", path))
	}
	return &profile, nil
}

// printJSON writes an indented JSON document to stdout
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to encode output")
	}
	return nil
}
