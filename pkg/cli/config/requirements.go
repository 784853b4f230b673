package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/caseflow/pkg/domain/model"
	"github.com/secmon-lab/caseflow/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Requirements holds the CLI flag for the document requirement table
type Requirements struct {
	path string
}

func (x *Requirements) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "requirements-config",
			Usage:       "TOML file overriding the documents required per change type",
			Sources:     cli.EnvVars("CASEFLOW_REQUIREMENTS_CONFIG"),
			Destination: &x.path,
		},
	}
}

// Path returns the configured TOML path
func (x *Requirements) Path() string {
	return x.path
}

// Configure returns the default requirement table, overridden by the TOML file if one is set
func (x *Requirements) Configure() (model.RequirementTable, error) {
	if x.path == "" {
		return model.DefaultRequirementTable(), nil
	}
	return LoadRequirementTable(x.path)
}

// RequirementFile is the TOML layout of a requirement table file:
//
//	[[requirement]]
//	change_type = "Address Update"
//	documents = ["Proof of Address", "Utility Bill"]
type RequirementFile struct {
	Requirements []RequirementEntry `toml:"requirement"`
}

// RequirementEntry lists the documents one change type requires
type RequirementEntry struct {
	ChangeType string   `toml:"change_type"`
	Documents  []string `toml:"documents"`
}

// Table converts the file into a requirement table, rejecting repeated change types
func (f *RequirementFile) Table() (model.RequirementTable, error) {
	table := make(model.RequirementTable, len(f.Requirements))
	for _, entry := range f.Requirements {
		changeType := types.ChangeType(entry.ChangeType)
		if _, exists := table[changeType]; exists {
			return nil, goerr.Wrap(ErrInvalidConfig, "duplicate change type", goerr.V(ChangeTypeKey, entry.ChangeType))
		}
		docs := entry.Documents
		if docs == nil {
			docs = []string{}
		}
		table[changeType] = docs
	}

	if err := table.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "invalid requirement table", goerr.V("error", err.Error()))
	}
	return table, nil
}

// LoadRequirementTable reads a TOML file and merges it over the default table
func LoadRequirementTable(path string) (model.RequirementTable, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "requirement config does not exist", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read requirement config", goerr.V(ConfigPathKey, path))
	}

	return ParseRequirementTable(data, path)
}

// ParseRequirementTable parses TOML data and merges it over the default table
func ParseRequirementTable(data []byte, path string) (model.RequirementTable, error) {
	var file RequirementFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config", goerr.V(ConfigPathKey, path), goerr.V("error", err.Error()))
	}

	override, err := file.Table()
	if err != nil {
		return nil, goerr.Wrap(err, "requirement config validation failed", goerr.V(ConfigPathKey, path))
	}

	return model.DefaultRequirementTable().Merge(override), nil
}
