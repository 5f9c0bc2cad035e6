package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory. Fields missing from the
// file, or the whole file, fall back to the defaults.
func Load(path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	return LoadFs(afero.NewBasePathFs(afero.NewOsFs(), path), path)
}

// LoadFs loads the configuration from the root of fsys, dir is the location
// fsys represents on disk.
func LoadFs(fsys afero.Fs, dir string) (*Configuration, error) {
	out := defaultConfig()

	configContents, err := afero.ReadFile(fsys, ConfigurationName)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Use the defaults.
	case err != nil:
		return nil, err
	default:
		if err := yaml.UnmarshalStrict(configContents, out); err != nil {
			return nil, fmt.Errorf("%s: %w", ConfigurationName, err)
		}
	}

	out.configFs = fsys
	out.configDir = dir

	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ConfigurationName, err)
	}
	return out, nil
}

// Initialize creates the configuration directory and writes the default
// configuration into it if there isn't one already.
func Initialize(path string, logger *log.Logger) (*Configuration, error) {
	return InitializeFs(afero.NewOsFs(), path, logger)
}

// InitializeFs is Initialize on an arbitrary filesystem.
func InitializeFs(fsys afero.Fs, path string, logger *log.Logger) (*Configuration, error) {
	if err := fsys.MkdirAll(path, 0700); err != nil {
		return nil, err
	}

	configPath := filepath.Join(path, ConfigurationName)
	switch exists, err := afero.Exists(fsys, configPath); {
	case err != nil:
		return nil, err
	case exists:
		logger.Printf("%s already exists, keeping it", configPath)
	default:
		logger.Printf("Writing %s", configPath)
		if err := afero.WriteFile(fsys, configPath, defaultConfigData, 0600); err != nil {
			return nil, err
		}
	}

	return LoadFs(afero.NewBasePathFs(fsys, path), path)
}
