package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cognicore/treetag/pkg/treetag/internalerr"
)

// Profile holds the resolved resource files for one language. Parameter
// is always set; Lexicon and Abbreviations are empty when the optional
// file is not installed.
type Profile struct {
	Language      string
	Variant       string
	Parameter     string
	Lexicon       string
	Abbreviations string
}

// libDir is the subdirectory of a TreeTagger installation that holds
// parameter files.
const libDir = "lib"

// ListInstalled returns the names of the languages that have a
// parameter file under <installDir>/lib, sorted and deduplicated across
// variants. A missing or empty lib directory yields an empty list.
func ListInstalled(installDir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(installDir, libDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan %s: %w", filepath.Join(installDir, libDir), err)
	}

	seen := map[string]bool{}
	var langs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		lang, ok := paramLanguage(e.Name())
		if !ok || seen[lang] {
			continue
		}
		seen[lang] = true
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs, nil
}

// paramLanguage extracts the language from a parameter file name of the
// form <language>-<variant>.par.
func paramLanguage(name string) (string, bool) {
	if !strings.HasSuffix(name, ".par") {
		return "", false
	}
	stem := strings.TrimSuffix(name, ".par")
	i := strings.IndexByte(stem, '-')
	if i <= 0 || i == len(stem)-1 {
		return "", false
	}
	return stem[:i], true
}

// Resolve locates the resource files for tagging language in the given
// variant. The parameter file is required; lexicon and abbreviation
// files are attached when present.
func Resolve(installDir, language, variant string) (Profile, error) {
	return resolve(installDir, language, variant, language+"-"+variant+".par")
}

// ResolveChunker locates the resource files for chunking. The chunker
// has its own parameter file; a language installed for plain tagging
// only is not installed for chunking.
func ResolveChunker(installDir, language, variant string) (Profile, error) {
	return resolve(installDir, language, variant, language+"-chunker-"+variant+".par")
}

func resolve(installDir, language, variant, paramName string) (Profile, error) {
	lib := filepath.Join(installDir, libDir)
	param := filepath.Join(lib, paramName)
	if _, err := os.Stat(param); err != nil {
		return Profile{}, fmt.Errorf("%s (%s, no %s): %w",
			language, variant, paramName, internalerr.ErrNotInstalled)
	}

	p := Profile{
		Language:  language,
		Variant:   variant,
		Parameter: param,
	}
	p.Lexicon = firstExisting(
		filepath.Join(lib, language+"-lexicon-"+variant+".txt"),
		filepath.Join(lib, language+"-lexicon.txt"),
	)
	p.Abbreviations = firstExisting(
		filepath.Join(lib, language+"-abbreviations-"+variant),
		filepath.Join(lib, language+"-abbreviations"),
	)
	return p, nil
}

func firstExisting(paths ...string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
