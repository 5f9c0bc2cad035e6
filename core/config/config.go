package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/anmitsu/go-shlex"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
	AppLogName        = "app.log"
)

// Color modes.
const (
	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	configFs  afero.Fs
	configDir string

	PromptIndicator string `json:"prompt_indicator" validate:"required"`
	Color           string `json:"color" validate:"oneof=always auto never"`
	HistoryFile     string `json:"history_file"`
	HistoryLimit    int    `json:"history_limit" validate:"gte=-1"`
	PipeSource      string `json:"pipe_source" validate:"required"`
	EventLog        bool   `json:"event_log"`
	Suggestions     int    `json:"suggestions" validate:"gte=0,lte=50"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	if err := validate.Struct(c); err != nil {
		return err
	}

	_, err := c.PipeSourceArgs()
	return err
}

func (c *Configuration) fs() afero.Fs {
	return c.configFs
}

// Dir returns the configuration directory.
func (c *Configuration) Dir() string {
	return c.configDir
}

// PipeSourceArgs splits pipe_source into a program and its arguments using
// shell quoting rules.
func (c *Configuration) PipeSourceArgs() ([]string, error) {
	args, err := shlex.Split(c.PipeSource, true)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, errors.New("pipe_source: no program given")
	}
	return args, nil
}

// HistoryPath returns the absolute path of the history file or "" if history
// isn't saved.
func (c *Configuration) HistoryPath() string {
	switch {
	case c.HistoryFile == "":
		return ""
	case filepath.IsAbs(c.HistoryFile):
		return c.HistoryFile
	default:
		return filepath.Join(c.configDir, c.HistoryFile)
	}
}

// OpenAppLog opens the application log in an append only state, creating the
// configuration directory if it doesn't exist yet.
func (c *Configuration) OpenAppLog() (afero.File, error) {
	if err := c.fs().MkdirAll(string(filepath.Separator), 0700); err != nil {
		return nil, err
	}
	return c.fs().OpenFile(AppLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

func (c *Configuration) ReadAppLog() (afero.File, error) {
	return c.fs().OpenFile(AppLogName, os.O_RDONLY, 0600)
}

// Default returns the built-in configuration, it isn't backed by a directory.
func Default() *Configuration {
	out := defaultConfig()
	out.configFs = afero.NewMemMapFs()
	return out
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
