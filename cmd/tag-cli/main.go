package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/cognicore/treetag/pkg/treetag"
	"github.com/cognicore/treetag/pkg/treetag/config"
	"github.com/cognicore/treetag/pkg/treetag/invoke"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (optional)")
		home       = flag.String("home", "", "TreeTagger installation directory (overrides config/env)")
		lang       = flag.String("lang", "", "Language to tag, e.g. english")
		encoding   = flag.String("encoding", "", "Text encoding: utf8 or latin-1")
		abbr       = flag.Bool("abbr", false, "Use the installed abbreviation file")
		timeout    = flag.Duration("timeout", 30*time.Second, "Per-invocation timeout")
		text       = flag.String("text", "", "One-shot text to tag (non-interactive mode)")
		languages  = flag.Bool("languages", false, "List installed languages and exit")
	)
	flag.Parse()

	opts, err := buildOptions(*configPath, *home, *lang, *encoding, *abbr, *timeout)
	if err != nil {
		log.Fatal(err)
	}

	tagger, err := treetag.NewTagger(opts)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	if *languages {
		langs, err := tagger.Languages()
		if err != nil {
			log.Fatal(err)
		}
		for _, l := range langs {
			fmt.Println(l)
		}
		return
	}

	// One-shot mode
	if *text != "" {
		if err := tagAndPrint(ctx, tagger, *text); err != nil {
			log.Fatal(err)
		}
		return
	}

	// Interactive mode
	fmt.Fprintln(os.Stderr, "Reading sentences from stdin (Ctrl+D to exit):")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := tagAndPrint(ctx, tagger, line); err != nil {
			log.Fatal(err)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}
}

func tagAndPrint(ctx context.Context, tagger *treetag.Tagger, text string) error {
	tokens, err := tagger.Tag(ctx, text)
	if err != nil {
		return err
	}
	for _, tok := range tokens {
		fmt.Printf("%s\t%s\t%s\n", tok.Surface, tok.Tag, tok.Lemma)
	}
	return nil
}

// buildOptions layers flag overrides on top of the config file and
// environment lookup.
func buildOptions(configPath, home, lang, encoding string, abbr bool, timeout time.Duration) (treetag.Options, error) {
	loader := config.Loader{Path: configPath}
	opts, err := loader.Load()
	if err != nil {
		return treetag.Options{}, err
	}

	if home != "" {
		opts.InstallDir = home
	}
	if lang != "" {
		opts.Language = lang
	}
	if encoding != "" {
		opts.Encoding = invoke.Encoding(encoding)
	}
	if abbr {
		opts.Abbreviations = true
	}
	if opts.Timeout == 0 {
		opts.Timeout = timeout
	}
	return opts, nil
}
