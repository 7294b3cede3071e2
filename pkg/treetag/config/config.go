package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/treetag/pkg/treetag"
	"github.com/cognicore/treetag/pkg/treetag/invoke"
)

// File represents the on-disk tagger configuration
type File struct {
	InstallDir    string `yaml:"install_dir"`
	Language      string `yaml:"language"`
	Encoding      string `yaml:"encoding"`
	Abbreviations bool   `yaml:"abbreviations"`
	Timeout       string `yaml:"timeout"`
}

// Load reads a tagger configuration from a YAML file
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	return &f, nil
}

// Options converts the file form into facade options. The timeout is a
// Go duration string such as "30s".
func (f *File) Options() (treetag.Options, error) {
	opts := treetag.Options{
		InstallDir:    f.InstallDir,
		Language:      f.Language,
		Encoding:      invoke.Encoding(f.Encoding),
		Abbreviations: f.Abbreviations,
	}
	if f.Timeout != "" {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return treetag.Options{}, fmt.Errorf("parse timeout: %w", err)
		}
		opts.Timeout = d
	}
	return opts, nil
}
