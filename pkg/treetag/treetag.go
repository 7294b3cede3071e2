// Package treetag drives Helmut Schmid's TreeTagger command-line tool:
// it resolves the language resources of an installation, pipes text
// through the tagger binary, and parses the tab-delimited output into
// token/tag/lemma records, or into a chunk tree for the chunking mode.
package treetag

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cognicore/treetag/pkg/treetag/internalerr"
	"github.com/cognicore/treetag/pkg/treetag/invoke"
	"github.com/cognicore/treetag/pkg/treetag/parse"
	"github.com/cognicore/treetag/pkg/treetag/registry"
)

// DefaultLanguage is used when Options.Language is empty, matching the
// tool's own documentation default.
const DefaultLanguage = "german"

// Options configures a Tagger or Chunker instance. Options are read
// only after construction; a facade instance may be used from multiple
// goroutines, each call spawns its own tagger process.
type Options struct {
	// InstallDir is the TreeTagger installation root (the directory
	// holding bin/ and lib/). Required; use config.FromEnv to populate
	// it from the environment.
	InstallDir string
	// Language selects the parameter file, e.g. "english" or "german".
	Language string
	// Encoding is the codec of the parameter file variant and of all
	// text exchanged with the tagger. Defaults to UTF-8.
	Encoding invoke.Encoding
	// Abbreviations enables the installation's abbreviation file for
	// sentence-boundary handling, when one is installed.
	Abbreviations bool
	// Timeout bounds each tagger invocation; zero means no bound.
	Timeout time.Duration
}

// Tagger is the plain part-of-speech tagging facade.
type Tagger struct {
	inv     invocation
	profile registry.Profile
}

// Chunker is the chunking facade; its output groups tagged tokens into
// labeled phrases.
type Chunker struct {
	inv     invocation
	profile registry.Profile
}

// invocation is the resolved, immutable command line shared by both
// facades.
type invocation struct {
	installDir string
	exe        string
	runner     invoke.Runner
}

// NewTagger resolves the installation and language resources for plain
// tagging. Resolution failures surface here, not at call time.
func NewTagger(opts Options) (*Tagger, error) {
	inv, err := resolveInstall(opts)
	if err != nil {
		return nil, err
	}
	profile, err := registry.Resolve(opts.InstallDir, language(opts), opts.Encoding.Variant())
	if err != nil {
		return nil, err
	}
	if !opts.Abbreviations {
		profile.Abbreviations = ""
	}
	return &Tagger{inv: inv, profile: profile}, nil
}

// NewChunker resolves the installation and chunker resources. A
// language installed for plain tagging only fails with ErrNotInstalled.
func NewChunker(opts Options) (*Chunker, error) {
	inv, err := resolveInstall(opts)
	if err != nil {
		return nil, err
	}
	profile, err := registry.ResolveChunker(opts.InstallDir, language(opts), opts.Encoding.Variant())
	if err != nil {
		return nil, err
	}
	if !opts.Abbreviations {
		profile.Abbreviations = ""
	}
	return &Chunker{inv: inv, profile: profile}, nil
}

// Tag runs the tagger on text and returns one Token per tagged line.
func (t *Tagger) Tag(ctx context.Context, text string) ([]parse.Token, error) {
	out, err := t.inv.runner.Run(ctx, t.inv.exe, tagArgs(t.profile, false), text)
	if err != nil {
		return nil, err
	}
	return parse.Plain(out)
}

// Languages lists the languages installed under the configured root.
func (t *Tagger) Languages() ([]string, error) {
	return registry.ListInstalled(t.inv.installDir)
}

// Parse runs the chunker on text and returns the flat annotated stream
// of chunk markers and tokens. Marker balance is validated the same way
// ParseToTree validates it; unbalanced output fails, it is never passed
// through.
func (c *Chunker) Parse(ctx context.Context, text string) ([]parse.Item, error) {
	root, err := c.ParseToTree(ctx, text)
	if err != nil {
		return nil, err
	}
	return root.Items(), nil
}

// ParseToTree runs the chunker on text and builds the chunk tree. The
// tree's leaves, left to right, are exactly the tokens Parse yields.
func (c *Chunker) ParseToTree(ctx context.Context, text string) (*parse.Node, error) {
	out, err := c.inv.runner.Run(ctx, c.inv.exe, tagArgs(c.profile, true), text)
	if err != nil {
		return nil, err
	}
	return parse.Chunked(out)
}

func language(opts Options) string {
	if opts.Language == "" {
		return DefaultLanguage
	}
	return opts.Language
}

// resolveInstall checks the installation root and tagger binary up
// front so a misconfigured setup fails at construction with a path in
// the error.
func resolveInstall(opts Options) (invocation, error) {
	if opts.InstallDir == "" {
		return invocation{}, internalerr.ErrNoInstallation
	}
	exe := filepath.Join(opts.InstallDir, "bin", "tree-tagger")
	info, err := os.Stat(exe)
	if err != nil || info.IsDir() {
		return invocation{}, fmt.Errorf("%s: %w", exe, internalerr.ErrLaunch)
	}
	return invocation{
		installDir: opts.InstallDir,
		exe:        exe,
		runner: invoke.Runner{
			Encoding: opts.Encoding,
			Timeout:  opts.Timeout,
		},
	}, nil
}

// tagArgs builds the tagger argv: fixed flags, the optional
// abbreviation file, then the parameter file. Each argument is a
// discrete element, never a spliced string.
func tagArgs(p registry.Profile, sgml bool) []string {
	args := []string{"-token", "-lemma", "-quiet"}
	if sgml {
		args = append(args, "-sgml")
	}
	if p.Abbreviations != "" {
		args = append(args, "-a", p.Abbreviations)
	}
	if p.Lexicon != "" {
		args = append(args, "-lex", p.Lexicon)
	}
	args = append(args, p.Parameter)
	return args
}
