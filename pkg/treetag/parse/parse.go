package parse

import (
	"fmt"
	"strings"

	"github.com/cognicore/treetag/pkg/treetag/internalerr"
)

// UnknownLemma is the placeholder TreeTagger emits when it cannot
// lemmatize a token. It is passed through verbatim, never rewritten.
const UnknownLemma = "<unknown>"

// Token is one tagged word: surface form, part-of-speech tag, lemma.
type Token struct {
	Surface string
	Tag     string
	Lemma   string
}

// Plain parses plain tagger output into an ordered token sequence.
// Each line must carry exactly three fields; trailing blank lines are
// discarded, blank lines elsewhere fail with ErrMalformedLine.
func Plain(output string) ([]Token, error) {
	lines := splitLines(output)
	tokens := make([]Token, 0, len(lines))
	for i, line := range lines {
		tok, err := parseLine(line, i+1)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// splitLines splits output on newlines and drops trailing empty lines.
func splitLines(output string) []string {
	lines := strings.Split(strings.ReplaceAll(output, "\r\n", "\n"), "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// parseLine splits one tagger line into its three fields. TreeTagger
// delimits columns with tabs, so a surface token containing a space
// still splits cleanly when tabs are present; tab-free lines fall back
// to whitespace-run splitting. Any other field count is an error, not
// silently repaired data.
func parseLine(line string, lineno int) (Token, error) {
	var fields []string
	if strings.ContainsRune(line, '\t') {
		fields = strings.Split(line, "\t")
	} else {
		fields = strings.Fields(line)
	}
	if len(fields) != 3 {
		return Token{}, fmt.Errorf("line %d %q: %d fields: %w",
			lineno, line, len(fields), internalerr.ErrMalformedLine)
	}
	return Token{Surface: fields[0], Tag: fields[1], Lemma: fields[2]}, nil
}
