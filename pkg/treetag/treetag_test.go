package treetag

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/cognicore/treetag/pkg/treetag/internalerr"
	"github.com/cognicore/treetag/pkg/treetag/invoke"
)

// echoTagger is a stub tree-tagger that splits its stdin into words and
// emits one tagged line per word, with fixed tags for the words the
// examples use.
const echoTagger = `#!/bin/sh
awk '{
	for (i = 1; i <= NF; i++) {
		w = $i
		if (w == "What") print "What\tWP\tWhat"
		else if (w == "is") print "is\tVBZ\tbe"
		else print w "\tNN\t" w
	}
}'
`

// chunkTagger ignores its input and emits a fixed two-chunk sentence.
const chunkTagger = `#!/bin/sh
cat >/dev/null
printf '<NC>\nWhat\tWP\twhat\n</NC>\n<VC>\nis\tVBZ\tbe\n</VC>\n'
`

// brokenChunkTagger emits an unmatched close marker and then leaves a
// chunk open.
const brokenChunkTagger = `#!/bin/sh
cat >/dev/null
printf '</NC>\nWhat\tWP\twhat\n<VC>\n'
`

// argvTagger records its argv next to itself and emits one token.
const argvTagger = `#!/bin/sh
cat >/dev/null
printf '%s\n' "$@" > "$(dirname "$0")/../argv.txt"
printf 'x\tNN\tx\n'
`

// fakeInstall builds a TreeTagger-shaped tree: the script as
// bin/tree-tagger plus the given lib files.
func fakeInstall(t *testing.T, script string, libFiles ...string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
	dir := t.TempDir()
	for _, sub := range []string{"bin", "lib"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "bin", "tree-tagger"), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range libFiles {
		if err := os.WriteFile(filepath.Join(dir, "lib", name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestNewTaggerNoInstallDir(t *testing.T) {
	_, err := NewTagger(Options{})
	if !errors.Is(err, internalerr.ErrNoInstallation) {
		t.Errorf("Expected ErrNoInstallation, got %v", err)
	}
}

func TestNewTaggerMissingBinary(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "lib"), 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := NewTagger(Options{InstallDir: dir, Language: "english"})
	if !errors.Is(err, internalerr.ErrLaunch) {
		t.Errorf("Expected ErrLaunch, got %v", err)
	}
}

func TestNewTaggerLanguageNotInstalled(t *testing.T) {
	dir := fakeInstall(t, echoTagger, "german-utf8.par")

	_, err := NewTagger(Options{InstallDir: dir, Language: "english"})
	if !errors.Is(err, internalerr.ErrNotInstalled) {
		t.Errorf("Expected ErrNotInstalled, got %v", err)
	}
}

func TestTagExample(t *testing.T) {
	dir := fakeInstall(t, echoTagger, "english-utf8.par")

	tagger, err := NewTagger(Options{InstallDir: dir, Language: "english"})
	if err != nil {
		t.Fatalf("NewTagger failed: %v", err)
	}

	tokens, err := tagger.Tag(context.Background(), "What is")
	if err != nil {
		t.Fatalf("Tag failed: %v", err)
	}

	if len(tokens) != 2 {
		t.Fatalf("Expected 2 tokens, got %d", len(tokens))
	}
	if tokens[0].Surface != "What" || tokens[0].Tag != "WP" || tokens[0].Lemma != "What" {
		t.Errorf("Unexpected first token: %v", tokens[0])
	}
	if tokens[1].Surface != "is" || tokens[1].Tag != "VBZ" || tokens[1].Lemma != "be" {
		t.Errorf("Unexpected second token: %v", tokens[1])
	}
}

// One TaggedToken per input word, for any word count.
func TestTagRoundTripTokenCount(t *testing.T) {
	dir := fakeInstall(t, echoTagger, "english-utf8.par")

	tagger, err := NewTagger(Options{InstallDir: dir, Language: "english"})
	if err != nil {
		t.Fatalf("NewTagger failed: %v", err)
	}

	for _, sentence := range []string{
		"one",
		"the quick brown fox",
		"What is the airspeed of an unladen swallow",
	} {
		tokens, err := tagger.Tag(context.Background(), sentence)
		if err != nil {
			t.Fatalf("Tag(%q) failed: %v", sentence, err)
		}
		if want := len(strings.Fields(sentence)); len(tokens) != want {
			t.Errorf("Tag(%q): expected %d tokens, got %d", sentence, want, len(tokens))
		}
	}
}

func TestTaggerLanguages(t *testing.T) {
	dir := fakeInstall(t, echoTagger, "english-utf8.par", "german-utf8.par")

	tagger, err := NewTagger(Options{InstallDir: dir, Language: "english"})
	if err != nil {
		t.Fatalf("NewTagger failed: %v", err)
	}

	langs, err := tagger.Languages()
	if err != nil {
		t.Fatalf("Languages failed: %v", err)
	}
	if len(langs) != 2 || langs[0] != "english" || langs[1] != "german" {
		t.Errorf("Expected [english german], got %v", langs)
	}
}

func TestTaggerArgv(t *testing.T) {
	dir := fakeInstall(t, argvTagger,
		"english-utf8.par", "english-abbreviations")

	tagger, err := NewTagger(Options{
		InstallDir:    dir,
		Language:      "english",
		Abbreviations: true,
	})
	if err != nil {
		t.Fatalf("NewTagger failed: %v", err)
	}
	if _, err := tagger.Tag(context.Background(), "x"); err != nil {
		t.Fatalf("Tag failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "argv.txt"))
	if err != nil {
		t.Fatal(err)
	}
	argv := strings.Split(strings.TrimSpace(string(data)), "\n")

	want := []string{
		"-token", "-lemma", "-quiet",
		"-a", filepath.Join(dir, "lib", "english-abbreviations"),
		filepath.Join(dir, "lib", "english-utf8.par"),
	}
	if len(argv) != len(want) {
		t.Fatalf("Expected argv %v, got %v", want, argv)
	}
	for i := range want {
		if argv[i] != want[i] {
			t.Errorf("argv[%d]: expected %q, got %q", i, want[i], argv[i])
		}
	}
}

func TestTaggerAbbreviationsOffByDefault(t *testing.T) {
	dir := fakeInstall(t, argvTagger,
		"english-utf8.par", "english-abbreviations")

	tagger, err := NewTagger(Options{InstallDir: dir, Language: "english"})
	if err != nil {
		t.Fatalf("NewTagger failed: %v", err)
	}
	if _, err := tagger.Tag(context.Background(), "x"); err != nil {
		t.Fatalf("Tag failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "argv.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "-a") {
		t.Errorf("Abbreviation file passed without opting in: %q", data)
	}
}

func TestNewChunkerRequiresChunkerResources(t *testing.T) {
	dir := fakeInstall(t, chunkTagger, "english-utf8.par")

	_, err := NewChunker(Options{InstallDir: dir, Language: "english"})
	if !errors.Is(err, internalerr.ErrNotInstalled) {
		t.Errorf("Expected ErrNotInstalled, got %v", err)
	}
}

func TestParseToTreeExample(t *testing.T) {
	dir := fakeInstall(t, chunkTagger,
		"english-utf8.par", "english-chunker-utf8.par")

	chunker, err := NewChunker(Options{InstallDir: dir, Language: "english"})
	if err != nil {
		t.Fatalf("NewChunker failed: %v", err)
	}

	root, err := chunker.ParseToTree(context.Background(), "What is")
	if err != nil {
		t.Fatalf("ParseToTree failed: %v", err)
	}

	if len(root.Children) != 2 {
		t.Fatalf("Expected 2 chunks, got %d", len(root.Children))
	}
	if root.Children[0].Label != "NC" || root.Children[1].Label != "VC" {
		t.Errorf("Expected NC and VC chunks, got %q and %q",
			root.Children[0].Label, root.Children[1].Label)
	}
	for i, c := range root.Children {
		if len(c.Children) != 1 || !c.Children[0].IsLeaf() {
			t.Errorf("Chunk %d should contain exactly one leaf", i)
		}
	}
}

func TestParseFlatExample(t *testing.T) {
	dir := fakeInstall(t, chunkTagger,
		"english-utf8.par", "english-chunker-utf8.par")

	chunker, err := NewChunker(Options{InstallDir: dir, Language: "english"})
	if err != nil {
		t.Fatalf("NewChunker failed: %v", err)
	}

	items, err := chunker.Parse(context.Background(), "What is")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(items) != 6 {
		t.Fatalf("Expected 6 items, got %d", len(items))
	}
}

// Unbalanced chunker output must fail the flat parse path too, not
// only the tree builder.
func TestParseRejectsUnbalancedOutput(t *testing.T) {
	dir := fakeInstall(t, brokenChunkTagger,
		"english-utf8.par", "english-chunker-utf8.par")

	chunker, err := NewChunker(Options{InstallDir: dir, Language: "english"})
	if err != nil {
		t.Fatalf("NewChunker failed: %v", err)
	}

	items, err := chunker.Parse(context.Background(), "What is")
	if !errors.Is(err, internalerr.ErrUnbalancedChunk) {
		t.Errorf("Expected ErrUnbalancedChunk, got %v", err)
	}
	if items != nil {
		t.Errorf("Expected no items on failure, got %d", len(items))
	}
}

func TestDefaultLanguageIsGerman(t *testing.T) {
	dir := fakeInstall(t, echoTagger, "german-utf8.par")

	tagger, err := NewTagger(Options{InstallDir: dir})
	if err != nil {
		t.Fatalf("NewTagger without language failed: %v", err)
	}
	if _, err := tagger.Tag(context.Background(), "Haus"); err != nil {
		t.Errorf("Tag failed: %v", err)
	}
}

func TestEncodingSelectsVariant(t *testing.T) {
	dir := fakeInstall(t, echoTagger, "english-latin1.par")

	if _, err := NewTagger(Options{InstallDir: dir, Language: "english"}); err == nil {
		t.Error("UTF-8 default should not resolve a latin1-only language")
	}

	_, err := NewTagger(Options{
		InstallDir: dir,
		Language:   "english",
		Encoding:   invoke.Latin1,
	})
	if err != nil {
		t.Errorf("Latin-1 tagger should resolve: %v", err)
	}
}
