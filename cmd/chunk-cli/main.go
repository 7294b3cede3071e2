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
	"github.com/cognicore/treetag/pkg/treetag/parse"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (optional)")
		home       = flag.String("home", "", "TreeTagger installation directory (overrides config/env)")
		lang       = flag.String("lang", "", "Language to parse, e.g. english")
		encoding   = flag.String("encoding", "", "Text encoding: utf8 or latin-1")
		abbr       = flag.Bool("abbr", false, "Use the installed abbreviation file")
		timeout    = flag.Duration("timeout", 30*time.Second, "Per-invocation timeout")
		text       = flag.String("text", "", "One-shot text to parse (non-interactive mode)")
		flat       = flag.Bool("flat", false, "Print the flat marker/token stream instead of a tree")
	)
	flag.Parse()

	loader := config.Loader{Path: *configPath}
	opts, err := loader.Load()
	if err != nil {
		log.Fatal(err)
	}
	if *home != "" {
		opts.InstallDir = *home
	}
	if *lang != "" {
		opts.Language = *lang
	}
	if *encoding != "" {
		opts.Encoding = invoke.Encoding(*encoding)
	}
	if *abbr {
		opts.Abbreviations = true
	}
	if opts.Timeout == 0 {
		opts.Timeout = *timeout
	}

	chunker, err := treetag.NewChunker(opts)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	if *text != "" {
		if err := parseAndPrint(ctx, chunker, *text, *flat); err != nil {
			log.Fatal(err)
		}
		return
	}

	fmt.Fprintln(os.Stderr, "Reading sentences from stdin (Ctrl+D to exit):")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := parseAndPrint(ctx, chunker, line, *flat); err != nil {
			log.Fatal(err)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}
}

func parseAndPrint(ctx context.Context, chunker *treetag.Chunker, text string, flat bool) error {
	if flat {
		items, err := chunker.Parse(ctx, text)
		if err != nil {
			return err
		}
		for _, it := range items {
			switch it.Kind {
			case parse.ItemOpen:
				fmt.Printf("<%s>\n", it.Label)
			case parse.ItemClose:
				fmt.Printf("</%s>\n", it.Label)
			case parse.ItemToken:
				fmt.Printf("%s\t%s\t%s\n", it.Token.Surface, it.Token.Tag, it.Token.Lemma)
			}
		}
		return nil
	}

	root, err := chunker.ParseToTree(ctx, text)
	if err != nil {
		return err
	}
	printNode(root, 0)
	return nil
}

func printNode(n *parse.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.IsLeaf() {
		fmt.Printf("%s%s/%s (%s)\n", indent, n.Token.Surface, n.Token.Tag, n.Token.Lemma)
		return
	}
	fmt.Printf("%s%s\n", indent, n.Label)
	for _, c := range n.Children {
		printNode(c, depth+1)
	}
}
