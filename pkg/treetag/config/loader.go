package config

import (
	"fmt"
	"os"

	"github.com/cognicore/treetag/pkg/treetag"
)

// Environment variables the original TreeTagger tooling recognizes for
// locating an installation.
const (
	EnvHome = "TREETAGGER_HOME"
	EnvRoot = "TREETAGGER"
)

// FromEnv returns the installation directory named by the environment,
// or "" when neither variable is set. It is the one optional
// environment collaborator; nothing else in the module reads globals.
func FromEnv() string {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir
	}
	return os.Getenv(EnvRoot)
}

// Loader assembles facade options from an optional config file with
// environment fallback for the installation directory
type Loader struct {
	Path string
}

// Load reads the config file (when Path is set) and fills a missing
// installation directory from the environment
func (l *Loader) Load() (treetag.Options, error) {
	var opts treetag.Options

	if l.Path != "" {
		f, err := Load(l.Path)
		if err != nil {
			return treetag.Options{}, fmt.Errorf("load config: %w", err)
		}
		opts, err = f.Options()
		if err != nil {
			return treetag.Options{}, fmt.Errorf("load config: %w", err)
		}
	}

	if opts.InstallDir == "" {
		opts.InstallDir = FromEnv()
	}

	return opts, nil
}
