package instruction

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"pypatch/internal/errors"
)

// tomlDocument adapts the record list for TOML, which has no top-level
// arrays.
type tomlDocument struct {
	Instructions []Instruction `toml:"instructions"`
}

// Load reads the instruction list at path. The format follows the file
// extension: .json (default), .yaml/.yml, or .toml. A missing file is
// reported as InstructionsMissing so callers can degrade to an empty set.
func Load(path string) ([]Instruction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.InstructionsMissing,
				fmt.Sprintf("instruction file not found: %s", path))
		}
		return nil, errors.Wrap(errors.InternalError, "reading instruction file", err)
	}

	var instructions []Instruction
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &instructions); err != nil {
			return nil, errors.Wrap(errors.InternalError, "parsing YAML instructions", err)
		}
	case ".toml":
		var doc tomlDocument
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(errors.InternalError, "parsing TOML instructions", err)
		}
		instructions = doc.Instructions
	default:
		if err := json.Unmarshal(data, &instructions); err != nil {
			return nil, errors.Wrap(errors.InternalError, "parsing JSON instructions", err)
		}
	}

	return instructions, nil
}
