package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/pyformat/domain"
	"github.com/pelletier/go-toml/v2"
)

const pyprojectFileName = "pyproject.toml"

// pyprojectToml represents the part of pyproject.toml read by pyformat
type pyprojectToml struct {
	Tool struct {
		Pyformat map[string]interface{} `toml:"pyformat"`
	} `toml:"tool"`
}

// LoadPyprojectSection finds the nearest pyproject.toml at or above startDir
// and returns its [tool.pyformat] table together with the file path. A
// missing file or a file without the table yields a nil section.
func LoadPyprojectSection(startDir string) (map[string]interface{}, string, error) {
	path, err := findPyprojectToml(startDir)
	if err != nil {
		return nil, "", nil
	}

	section, err := readPyprojectSection(path)
	if err != nil {
		return nil, "", err
	}
	if len(section) == 0 {
		return nil, "", nil
	}
	return section, path, nil
}

func readPyprojectSection(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("failed to read %s", path), err)
	}

	var pyproject pyprojectToml
	if err := toml.Unmarshal(data, &pyproject); err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("failed to parse %s", path), err)
	}
	return pyproject.Tool.Pyformat, nil
}

// findPyprojectToml walks up the directory tree to find pyproject.toml
func findPyprojectToml(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for {
		configPath := filepath.Join(dir, pyprojectFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}
